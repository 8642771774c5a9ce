package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintGateResults outputs the gate evaluation, dispatching based on the output format configured.
func PrintGateResults(result *schema.GateResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeGateJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeGateCSVResults(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGateTable(result, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeGateJSONResults handles opening the file and calling the JSON writer.
func writeGateJSONResults(result *schema.GateResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeGateCSVResults handles opening the file and calling the CSV writer.
func writeGateCSVResults(result *schema.GateResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"kind", "check", "value", "threshold", "outcome"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, res := range result.Results {
				row := []string{
					string(res.Kind),
					res.Name,
					formatCheckValue(res),
					formatCheckThreshold(res),
					contract.GetPlainOutcomeLabel(res.Outcome),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeGateTable generates and writes the human-readable table.
func writeGateTable(result *schema.GateResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Kind", "Check", "Value", "Threshold", "Outcome"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, res := range result.Results {
		data = append(data, []string{
			string(res.Kind),
			res.Name,
			formatCheckValue(res),
			formatCheckThreshold(res),
			outcomeLabel(res.Outcome, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary stats below the table
	passed := len(result.Results) - result.FailedCount()
	fmt.Fprintf(writer, "Checks: %d passed, %d failed (%s @ %s) in %v\n",
		passed, result.FailedCount(), result.Commit, result.Branch, duration.Round(time.Millisecond))
	if result.Passed {
		fmt.Fprintln(writer, "Gate outcome: "+outcomeLabel(schema.Passed, cfg.UseColors))
	} else {
		fmt.Fprintln(writer, "Gate outcome: "+outcomeLabel(schema.Failed, cfg.UseColors))
	}
	return nil
}

// PrintBundleResults outputs the bundle sub-check, dispatching based on the output format configured.
func PrintBundleResults(bundle *schema.BundleReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, bundle)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"file", "size_bytes", "within_limit"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, f := range bundle.Files {
					row := []string{f.Path, fmt.Sprintf("%d", f.SizeBytes), fmt.Sprintf("%t", f.WithinLimit)}
					if err := csvWriter.Write(row); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBundleTable(bundle, cfg, w)
		}, "Wrote table")
	}
}

// writeBundleTable generates and writes the human-readable bundle table.
func writeBundleTable(bundle *schema.BundleReport, cfg *contract.Config, writer io.Writer) error {
	if len(bundle.Files) == 0 {
		fmt.Fprintln(writer, "No JS/CSS artifacts found in the bundle directory")
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"File", "Size", "Limit", "Outcome"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// Reserve space for the fixed size/limit/outcome columns plus borders.
	maxPathWidth := getTableWidth(cfg) - 45
	if maxPathWidth < 15 {
		maxPathWidth = 15
	}

	var data [][]string
	for _, f := range bundle.Files {
		outcome := schema.Passed
		if !f.WithinLimit {
			outcome = schema.Failed
		}
		data = append(data, []string{
			truncatePath(f.Path, maxPathWidth),
			contract.FormatBytes(f.SizeBytes),
			contract.FormatBytes(bundle.FileLimitBytes),
			outcomeLabel(outcome, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalOutcome := schema.Passed
	if !bundle.TotalWithinLimit() {
		totalOutcome = schema.Failed
	}
	fmt.Fprintf(writer, "Bundle total: %s of %s allowed [%s]\n",
		contract.FormatBytes(bundle.TotalBytes),
		contract.FormatBytes(bundle.TotalLimitBytes),
		outcomeLabel(totalOutcome, cfg.UseColors))
	return nil
}
