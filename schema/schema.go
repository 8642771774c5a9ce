// Package schema has configs, models and constants for all parts of perfgate.
package schema

import "time"

// LighthouseReport mirrors the subset of a Lighthouse JSON report that the
// gate reads: fractional category scores and numeric audit values.
// The report is read-only input and is never mutated.
type LighthouseReport struct {
	Categories map[string]ReportCategory `json:"categories"`
	Audits     map[string]ReportAudit    `json:"audits"`
}

// ReportCategory holds the fractional score (0.0-1.0) of a single category.
// The pointer distinguishes a missing score from a literal zero.
type ReportCategory struct {
	Score *float64 `json:"score"`
}

// ReportAudit holds the numeric value of a single audit entry.
type ReportAudit struct {
	NumericValue *float64 `json:"numericValue"`
}

// ScoreSet maps each category to its integer percentage (0-100), computed by
// rounding score*100 to the nearest integer (ties away from zero).
type ScoreSet map[Category]int

// MetricSet maps each metric to its raw numeric value.
type MetricSet map[Metric]float64

// EvaluationResult is one record per evaluated score or metric, collected in
// evaluation order: scores first in declared order, then metrics in declared
// order. It is used for reporting only; control flow depends solely on the
// aggregate pass/fail flag.
type EvaluationResult struct {
	Kind      ResultKind `json:"kind"`
	Name      string     `json:"name"`
	Value     float64    `json:"value"`
	Threshold float64    `json:"threshold"`
	Outcome   Outcome    `json:"outcome"`
}

// GateResult holds everything a single gate run produced.
type GateResult struct {
	Passed           bool               `json:"passed"`
	Results          []EvaluationResult `json:"results"`
	Scores           ScoreSet           `json:"scores"`
	Metrics          MetricSet          `json:"metrics"`
	ScoreThresholds  map[Category]int   `json:"score_thresholds"`
	MetricThresholds map[Metric]float64 `json:"metric_thresholds"`
	ReportPath       string             `json:"report_path"`
	Commit           string             `json:"commit"`
	Branch           string             `json:"branch"`
}

// FailedCount returns the number of evaluated checks that failed.
func (r *GateResult) FailedCount() int {
	count := 0
	for _, res := range r.Results {
		if res.Outcome == Failed {
			count++
		}
	}
	return count
}

// HistoryEntry is a single persisted snapshot of a gate run.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Commit    string    `json:"commit"`
	Branch    string    `json:"branch"`
	Scores    ScoreSet  `json:"scores"`
	Metrics   MetricSet `json:"metrics"`
}

// BundleFile is a single build artifact inspected by the bundle sub-check.
type BundleFile struct {
	Path        string `json:"path"`
	SizeBytes   int64  `json:"size_bytes"`
	WithinLimit bool   `json:"within_limit"`
}

// BundleReport holds the informational output of the bundle-size sub-check.
// It never affects the aggregate gate outcome.
type BundleReport struct {
	Files           []BundleFile `json:"files"`
	TotalBytes      int64        `json:"total_bytes"`
	FileLimitBytes  int64        `json:"file_limit_bytes"`
	TotalLimitBytes int64        `json:"total_limit_bytes"`
}

// TotalWithinLimit reports whether the summed bundle size stays under the
// total limit.
func (b *BundleReport) TotalWithinLimit() bool {
	return b.TotalBytes <= b.TotalLimitBytes
}
