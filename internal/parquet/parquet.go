// Package parquet provides data structures and functions for exporting gate
// history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/perfgate/perfgate/schema"
)

// HistoryRecord represents a single gate run flattened for columnar export.
// One row is written per persisted history entry.
type HistoryRecord struct {
	// RunTimestamp is when the gate run happened (stored as TIMESTAMP with nanosecond precision)
	RunTimestamp time.Time `parquet:"run_timestamp,snappy"`

	// Commit is the commit hash the run evaluated, or "local" outside CI
	Commit string `parquet:"commit,snappy"`

	// Branch is the branch name the run evaluated, or "local" outside CI
	Branch string `parquet:"branch,snappy"`

	// Category scores as integer percentages (0-100)
	PerformanceScore   int32 `parquet:"performance_score,snappy"`
	AccessibilityScore int32 `parquet:"accessibility_score,snappy"`
	BestPracticesScore int32 `parquet:"best_practices_score,snappy"`
	SEOScore           int32 `parquet:"seo_score,snappy"`

	// Timing metrics in milliseconds; layout shift is unitless
	FirstContentfulPaintMs   float64 `parquet:"first_contentful_paint_ms,snappy"`
	LargestContentfulPaintMs float64 `parquet:"largest_contentful_paint_ms,snappy"`
	MaxPotentialFIDMs        float64 `parquet:"max_potential_fid_ms,snappy"`
	CumulativeLayoutShift    float64 `parquet:"cumulative_layout_shift,snappy"`
	SpeedIndexMs             float64 `parquet:"speed_index_ms,snappy"`
	InteractiveMs            float64 `parquet:"interactive_ms,snappy"`
}

// ConvertHistoryEntries flattens persisted history entries into export rows,
// preserving append order.
func ConvertHistoryEntries(entries []schema.HistoryEntry) []HistoryRecord {
	records := make([]HistoryRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, HistoryRecord{
			RunTimestamp:             entry.Timestamp,
			Commit:                   entry.Commit,
			Branch:                   entry.Branch,
			PerformanceScore:         int32(entry.Scores[schema.PerformanceCategory]),
			AccessibilityScore:       int32(entry.Scores[schema.AccessibilityCategory]),
			BestPracticesScore:       int32(entry.Scores[schema.BestPracticesCategory]),
			SEOScore:                 int32(entry.Scores[schema.SEOCategory]),
			FirstContentfulPaintMs:   entry.Metrics[schema.FirstContentfulPaint],
			LargestContentfulPaintMs: entry.Metrics[schema.LargestContentfulPaint],
			MaxPotentialFIDMs:        entry.Metrics[schema.MaxPotentialFID],
			CumulativeLayoutShift:    entry.Metrics[schema.CumulativeLayoutShift],
			SpeedIndexMs:             entry.Metrics[schema.SpeedIndex],
			InteractiveMs:            entry.Metrics[schema.Interactive],
		})
	}
	return records
}

// WriteHistoryParquet writes history export rows to a Parquet file.
func WriteHistoryParquet(records []HistoryRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the HistoryRecord struct tags
	writer := parquet.NewGenericWriter[HistoryRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
