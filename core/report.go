// Package core holds the gate evaluation logic for perfgate.
package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/perfgate/perfgate/schema"
)

// The closed set of fatal error variants. Any of these aborts the run with a
// non-zero exit status; callers and tests can distinguish causes with
// errors.Is without losing the "any of these is fatal" behavior.
var (
	// ErrReportMissing means the report file does not exist at the expected path.
	ErrReportMissing = errors.New("performance report not found")

	// ErrReportParse means the report exists but is not valid JSON.
	ErrReportParse = errors.New("performance report could not be parsed")

	// ErrReportShape means the report parsed but a required field is absent.
	ErrReportShape = errors.New("performance report is missing required fields")
)

// LoadReport reads and parses the Lighthouse report at the given path.
func LoadReport(path string) (*schema.LighthouseReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s. Run Lighthouse first to produce it", ErrReportMissing, path)
		}
		return nil, fmt.Errorf("%w at %s: %v", ErrReportMissing, path, err)
	}

	var rep schema.LighthouseReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportParse, err)
	}
	return &rep, nil
}

// ExtractScoreSet derives integer percentages for the four category scores.
// Fractional scores are multiplied by 100 and rounded to the nearest integer,
// ties away from zero (math.Round). A missing category or score is a shape
// error; there is no partial evaluation.
func ExtractScoreSet(rep *schema.LighthouseReport) (schema.ScoreSet, error) {
	scores := make(schema.ScoreSet, len(schema.ScoreOrder))
	for _, cat := range schema.ScoreOrder {
		entry, ok := rep.Categories[string(cat)]
		if !ok || entry.Score == nil {
			return nil, fmt.Errorf("%w: categories.%s.score", ErrReportShape, cat)
		}
		scores[cat] = int(math.Round(*entry.Score * 100))
	}
	return scores, nil
}

// ExtractMetricSet derives raw numeric values for the six metrics.
// A missing audit or numericValue is a shape error.
func ExtractMetricSet(rep *schema.LighthouseReport) (schema.MetricSet, error) {
	metrics := make(schema.MetricSet, len(schema.MetricOrder))
	for _, m := range schema.MetricOrder {
		entry, ok := rep.Audits[string(m)]
		if !ok || entry.NumericValue == nil {
			return nil, fmt.Errorf("%w: audits.%s.numericValue", ErrReportShape, m)
		}
		metrics[m] = *entry.NumericValue
	}
	return metrics, nil
}
