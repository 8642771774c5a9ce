package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// formatCheckValue renders a score or metric value with the unit readers
// expect: bare integers for scores, unitless layout shift with three
// decimals, milliseconds for everything else.
func formatCheckValue(res schema.EvaluationResult) string {
	if res.Kind == schema.ScoreKind {
		return fmt.Sprintf("%d", int(res.Value))
	}
	if res.Name == string(schema.CumulativeLayoutShift) {
		return fmt.Sprintf("%.3f", res.Value)
	}
	return fmt.Sprintf("%.0fms", res.Value)
}

// formatCheckThreshold renders the threshold with the same units and the
// direction of the comparison.
func formatCheckThreshold(res schema.EvaluationResult) string {
	if res.Kind == schema.ScoreKind {
		return fmt.Sprintf(">= %d", int(res.Threshold))
	}
	if res.Name == string(schema.CumulativeLayoutShift) {
		return fmt.Sprintf("<= %.3f", res.Threshold)
	}
	return fmt.Sprintf("<= %.0fms", res.Threshold)
}

// truncatePath shortens a path from the left so the filename stays visible.
func truncatePath(path string, maxWidth int) string {
	if maxWidth <= 3 || len(path) <= maxWidth {
		return path
	}
	return "..." + path[len(path)-maxWidth+3:]
}

// outcomeLabel picks the colored or plain label per the color setting.
func outcomeLabel(outcome schema.Outcome, useColors bool) string {
	if useColors {
		return contract.GetColorOutcomeLabel(outcome)
	}
	return contract.GetPlainOutcomeLabel(outcome)
}
