package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passingResult() *schema.GateResult {
	return &schema.GateResult{
		Passed: true,
		Results: []schema.EvaluationResult{
			{Kind: schema.ScoreKind, Name: "performance", Value: 95, Threshold: 90, Outcome: schema.Passed},
			{Kind: schema.MetricKind, Name: "largest-contentful-paint", Value: 2100, Threshold: 2500, Outcome: schema.Passed},
			{Kind: schema.MetricKind, Name: "cumulative-layout-shift", Value: 0.05, Threshold: 0.1, Outcome: schema.Passed},
		},
		Scores:  schema.ScoreSet{schema.PerformanceCategory: 95},
		Metrics: schema.MetricSet{schema.LargestContentfulPaint: 2100},
		Commit:  "abc1234",
		Branch:  "main",
	}
}

func outputConfig(t *testing.T, mode schema.OutputMode) (*contract.Config, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.txt")
	return &contract.Config{Output: mode, OutputFile: path, Width: 120}, path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPrintGateResultsTable(t *testing.T) {
	cfg, path := outputConfig(t, schema.TextOut)

	err := NewOutWriter().WriteGate(passingResult(), cfg, 5*time.Millisecond)
	require.NoError(t, err)

	out := readOutput(t, path)
	assert.Contains(t, out, "performance")
	assert.Contains(t, out, "largest-contentful-paint")
	assert.Contains(t, out, "2100ms")
	assert.Contains(t, out, "<= 0.100")
	assert.Contains(t, out, "3 passed, 0 failed")
	assert.Contains(t, out, "abc1234")
}

func TestPrintGateResultsJSON(t *testing.T) {
	cfg, path := outputConfig(t, schema.JSONOut)

	err := NewOutWriter().WriteGate(passingResult(), cfg, time.Millisecond)
	require.NoError(t, err)

	var decoded schema.GateResult
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, path)), &decoded))
	assert.True(t, decoded.Passed)
	assert.Len(t, decoded.Results, 3)
}

func TestPrintGateResultsCSV(t *testing.T) {
	cfg, path := outputConfig(t, schema.CSVOut)

	err := NewOutWriter().WriteGate(passingResult(), cfg, time.Millisecond)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(readOutput(t, path)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "kind,check,value,threshold,outcome", lines[0])
	assert.Contains(t, lines[1], "score,performance,95")
	assert.Contains(t, lines[1], "PASS")
}

func TestPrintBundleResultsTable(t *testing.T) {
	cfg, path := outputConfig(t, schema.TextOut)
	bundle := &schema.BundleReport{
		Files: []schema.BundleFile{
			{Path: "app.js", SizeBytes: 1024, WithinLimit: true},
			{Path: "vendor.js", SizeBytes: 300 * 1024, WithinLimit: false},
		},
		TotalBytes:      301 * 1024,
		FileLimitBytes:  contract.BundleFileLimitBytes,
		TotalLimitBytes: contract.BundleTotalLimitBytes,
	}

	err := NewOutWriter().WriteBundle(bundle, cfg)
	require.NoError(t, err)

	out := readOutput(t, path)
	assert.Contains(t, out, "vendor.js")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "Bundle total")
}

func TestPrintBundleResultsEmpty(t *testing.T) {
	cfg, path := outputConfig(t, schema.TextOut)
	bundle := &schema.BundleReport{
		FileLimitBytes:  contract.BundleFileLimitBytes,
		TotalLimitBytes: contract.BundleTotalLimitBytes,
	}

	err := NewOutWriter().WriteBundle(bundle, cfg)
	require.NoError(t, err)
	assert.Contains(t, readOutput(t, path), "No JS/CSS artifacts")
}

func historyEntries() []schema.HistoryEntry {
	return []schema.HistoryEntry{
		{
			Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			Commit:    "abcdef1234567890",
			Branch:    "main",
			Scores:    schema.ScoreSet{schema.PerformanceCategory: 92, schema.AccessibilityCategory: 100, schema.BestPracticesCategory: 100, schema.SEOCategory: 100},
			Metrics:   schema.MetricSet{schema.LargestContentfulPaint: 2100, schema.CumulativeLayoutShift: 0.05},
		},
	}
}

func TestPrintHistoryResultsTable(t *testing.T) {
	cfg, path := outputConfig(t, schema.TextOut)

	err := NewOutWriter().WriteHistory(historyEntries(), cfg)
	require.NoError(t, err)

	out := readOutput(t, path)
	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "1 of 50 entries")
}

func TestPrintHistoryResultsEmptyTable(t *testing.T) {
	cfg, path := outputConfig(t, schema.TextOut)

	err := NewOutWriter().WriteHistory(nil, cfg)
	require.NoError(t, err)
	assert.Contains(t, readOutput(t, path), "No history entries")
}

func TestPrintHistoryResultsCSV(t *testing.T) {
	cfg, path := outputConfig(t, schema.CSVOut)

	err := NewOutWriter().WriteHistory(historyEntries(), cfg)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(readOutput(t, path)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "timestamp,commit,branch,performance"))
	assert.Contains(t, lines[1], "abcdef1234567890")
}

func TestPrintHistoryStatus(t *testing.T) {
	cfg, path := outputConfig(t, schema.TextOut)
	status := schema.HistoryStatus{
		Backend:       "json",
		Connected:     true,
		TotalEntries:  3,
		LastEntryTime: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	err := NewOutWriter().WriteStatus(status, cfg)
	require.NoError(t, err)

	out := readOutput(t, path)
	assert.Contains(t, out, "Backend: json")
	assert.Contains(t, out, "Entries: 3 of 50")
	assert.Contains(t, out, "Latest entry")
}

func TestPrintHistoryStats(t *testing.T) {
	cfg, path := outputConfig(t, schema.TextOut)
	stats := &schema.HistoryStats{
		Entries: 3,
		Scores:  []schema.MetricStats{{Name: "performance", Mean: 90, Latest: 95, Delta: 5}},
		Metrics: []schema.MetricStats{{Name: "interactive", Mean: 3000, Latest: 2800, Delta: -200}},
	}

	err := NewOutWriter().WriteStats(stats, cfg)
	require.NoError(t, err)

	out := readOutput(t, path)
	assert.Contains(t, out, "performance")
	assert.Contains(t, out, "interactive")
	assert.Contains(t, out, "Statistics over 3 run(s)")
}

func TestWriteHTMLReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "performance-report")

	err := WriteHTMLReport(dir, passingResult(), historyEntries())
	require.NoError(t, err)

	out := readOutput(t, filepath.Join(dir, "index.html"))
	assert.Contains(t, out, "Performance Gate Report")
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, "largest-contentful-paint")
	assert.Contains(t, out, "performanceSeries")
}

func TestFormatCheckValue(t *testing.T) {
	tests := []struct {
		name     string
		res      schema.EvaluationResult
		expected string
	}{
		{"score", schema.EvaluationResult{Kind: schema.ScoreKind, Value: 95}, "95"},
		{"timing", schema.EvaluationResult{Kind: schema.MetricKind, Name: "interactive", Value: 3500}, "3500ms"},
		{"cls", schema.EvaluationResult{Kind: schema.MetricKind, Name: "cumulative-layout-shift", Value: 0.05}, "0.050"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatCheckValue(tt.res))
		})
	}
}

func TestGetTableWidthOverride(t *testing.T) {
	assert.Equal(t, 132, getTableWidth(&contract.Config{Width: 132}))
}
