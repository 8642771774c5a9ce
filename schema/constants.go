package schema

// Custom string types for type safety.
type (
	// Category represents a Lighthouse category identifier.
	Category string

	// Metric represents a Lighthouse audit identifier for a timing/stability metric.
	Metric string

	// ResultKind distinguishes score checks from metric checks.
	ResultKind string

	// Outcome represents the pass/fail classification of a single check.
	Outcome string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the storage backend for the history log.
	DatabaseBackend string
)

// All category identifiers evaluated by the gate.
const (
	PerformanceCategory   Category = "performance"
	AccessibilityCategory Category = "accessibility"
	BestPracticesCategory Category = "best-practices"
	SEOCategory           Category = "seo"
)

// All audit identifiers evaluated by the gate. MaxPotentialFID stands in
// for first-input-delay, which Lighthouse does not measure in lab runs.
const (
	FirstContentfulPaint   Metric = "first-contentful-paint"
	LargestContentfulPaint Metric = "largest-contentful-paint"
	MaxPotentialFID        Metric = "max-potential-fid"
	CumulativeLayoutShift  Metric = "cumulative-layout-shift"
	SpeedIndex             Metric = "speed-index"
	Interactive            Metric = "interactive"
)

// Result kinds collected during evaluation.
const (
	ScoreKind  ResultKind = "score"
	MetricKind ResultKind = "metric"
)

// Outcomes of a single check.
const (
	Passed Outcome = "passed"
	Failed Outcome = "failed"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All history backends supported.
const (
	JSONBackend       DatabaseBackend = "json" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// HistoryCap is the maximum number of entries retained in the history log.
// Oldest entries are evicted first when appending would exceed the cap.
const HistoryCap = 50

// ScoreOrder fixes the evaluation and display order of category scores.
var ScoreOrder = []Category{
	PerformanceCategory,
	AccessibilityCategory,
	BestPracticesCategory,
	SEOCategory,
}

// MetricOrder fixes the evaluation and display order of metrics.
var MetricOrder = []Metric{
	FirstContentfulPaint,
	LargestContentfulPaint,
	MaxPotentialFID,
	CumulativeLayoutShift,
	SpeedIndex,
	Interactive,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	JSONBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCategories lists all category identifiers known to the gate.
var ValidCategories = map[Category]struct{}{
	PerformanceCategory:   {},
	AccessibilityCategory: {},
	BestPracticesCategory: {},
	SEOCategory:           {},
}

// ValidMetrics lists all audit identifiers known to the gate.
var ValidMetrics = map[Metric]struct{}{
	FirstContentfulPaint:   {},
	LargestContentfulPaint: {},
	MaxPotentialFID:        {},
	CumulativeLayoutShift:  {},
	SpeedIndex:             {},
	Interactive:            {},
}

// DefaultScoreThresholds returns the default minimum percentage for each
// category. A score passes when it is greater than or equal to its threshold.
func DefaultScoreThresholds() map[Category]int {
	return map[Category]int{
		PerformanceCategory:   90,
		AccessibilityCategory: 90,
		BestPracticesCategory: 90,
		SEOCategory:           90,
	}
}

// DefaultMetricThresholds returns the default maximum value for each metric.
// Timing metrics are in milliseconds; cumulative-layout-shift is unitless.
// A metric passes when it is less than or equal to its threshold. A metric
// absent from this table is skipped entirely during evaluation.
func DefaultMetricThresholds() map[Metric]float64 {
	return map[Metric]float64{
		FirstContentfulPaint:   1800,
		LargestContentfulPaint: 2500,
		MaxPotentialFID:        100,
		CumulativeLayoutShift:  0.1,
		SpeedIndex:             3400,
		Interactive:            3800,
	}
}
