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

// PrintHistoryResults outputs the history log, dispatching based on the output format configured.
func PrintHistoryResults(entries []schema.HistoryEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(entries, w)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(entries, w)
		}, "Wrote table")
	}
}

// writeHistoryCSV writes one row per run with scores first, then metrics.
func writeHistoryCSV(entries []schema.HistoryEntry, w io.Writer) error {
	header := []string{"timestamp", "commit", "branch"}
	for _, cat := range schema.ScoreOrder {
		header = append(header, string(cat))
	}
	for _, met := range schema.MetricOrder {
		header = append(header, string(met))
	}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, entry := range entries {
			row := []string{entry.Timestamp.Format(time.RFC3339), entry.Commit, entry.Branch}
			for _, cat := range schema.ScoreOrder {
				row = append(row, fmt.Sprintf("%d", entry.Scores[cat]))
			}
			for _, met := range schema.MetricOrder {
				row = append(row, fmt.Sprintf("%g", entry.Metrics[met]))
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeHistoryTable generates and writes the human-readable history table.
func writeHistoryTable(entries []schema.HistoryEntry, w io.Writer) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history entries recorded yet")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Timestamp", "Commit", "Branch", "Perf", "A11y", "BP", "SEO", "LCP", "CLS"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, entry := range entries {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			entry.Timestamp.Format("2006-01-02 15:04"),
			shortRef(entry.Commit),
			entry.Branch,
			fmt.Sprintf("%d", entry.Scores[schema.PerformanceCategory]),
			fmt.Sprintf("%d", entry.Scores[schema.AccessibilityCategory]),
			fmt.Sprintf("%d", entry.Scores[schema.BestPracticesCategory]),
			fmt.Sprintf("%d", entry.Scores[schema.SEOCategory]),
			fmt.Sprintf("%.0fms", entry.Metrics[schema.LargestContentfulPaint]),
			fmt.Sprintf("%.3f", entry.Metrics[schema.CumulativeLayoutShift]),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "History: %d of %d entries\n", len(entries), schema.HistoryCap)
	return nil
}

// PrintHistoryStatus outputs the history store status.
func PrintHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Backend: %s\n", status.Backend)
		fmt.Fprintf(w, "Connected: %t\n", status.Connected)
		fmt.Fprintf(w, "Entries: %d of %d\n", status.TotalEntries, schema.HistoryCap)
		if !status.OldestEntryTime.IsZero() {
			fmt.Fprintf(w, "Oldest entry: %s\n", status.OldestEntryTime.Format(time.RFC3339))
		}
		if !status.LastEntryTime.IsZero() {
			fmt.Fprintf(w, "Latest entry: %s\n", status.LastEntryTime.Format(time.RFC3339))
		}
		return nil
	}, "Wrote status")
}

// PrintHistoryStats outputs aggregate statistics, dispatching based on the output format configured.
func PrintHistoryStats(stats *schema.HistoryStats, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"series", "mean", "std_dev", "min", "max", "latest", "delta"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, s := range append(append([]schema.MetricStats{}, stats.Scores...), stats.Metrics...) {
					row := []string{
						s.Name,
						fmt.Sprintf("%.2f", s.Mean),
						fmt.Sprintf("%.2f", s.StdDev),
						fmt.Sprintf("%.2f", s.Min),
						fmt.Sprintf("%.2f", s.Max),
						fmt.Sprintf("%.2f", s.Latest),
						fmt.Sprintf("%.2f", s.Delta),
					}
					if err := csvWriter.Write(row); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(stats, w)
		}, "Wrote table")
	}
}

// writeStatsTable generates and writes the human-readable statistics table.
func writeStatsTable(stats *schema.HistoryStats, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Series", "Mean", "StdDev", "Min", "Max", "Latest", "Delta"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range append(append([]schema.MetricStats{}, stats.Scores...), stats.Metrics...) {
		data = append(data, []string{
			s.Name,
			fmt.Sprintf("%.2f", s.Mean),
			fmt.Sprintf("%.2f", s.StdDev),
			fmt.Sprintf("%.2f", s.Min),
			fmt.Sprintf("%.2f", s.Max),
			fmt.Sprintf("%.2f", s.Latest),
			fmt.Sprintf("%+.2f", s.Delta),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Statistics over %d run(s)\n", stats.Entries)
	return nil
}

// shortRef abbreviates a commit hash for table display.
func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}
