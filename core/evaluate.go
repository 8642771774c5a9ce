package core

import (
	"github.com/perfgate/perfgate/schema"
)

// Evaluate classifies every score and metric against the threshold tables and
// returns the ordered result list plus the aggregate outcome.
//
// Scores are evaluated first in declared order, then metrics in declared
// order; results are never reordered by value or outcome. Both comparison
// boundaries are inclusive: a score equal to its threshold passes, and a
// metric equal to its threshold passes. Evaluation is exhaustive so the full
// result set is always available for reporting.
//
// A score or metric with no entry in its threshold table is skipped entirely:
// not failed, not collected, not counted.
func Evaluate(
	scores schema.ScoreSet,
	metrics schema.MetricSet,
	scoreThresholds map[schema.Category]int,
	metricThresholds map[schema.Metric]float64,
) ([]schema.EvaluationResult, bool) {
	results := make([]schema.EvaluationResult, 0, len(schema.ScoreOrder)+len(schema.MetricOrder))
	passed := true

	for _, cat := range schema.ScoreOrder {
		threshold, ok := scoreThresholds[cat]
		if !ok {
			continue
		}
		value := scores[cat]
		outcome := schema.Passed
		if value < threshold {
			outcome = schema.Failed
			passed = false
		}
		results = append(results, schema.EvaluationResult{
			Kind:      schema.ScoreKind,
			Name:      string(cat),
			Value:     float64(value),
			Threshold: float64(threshold),
			Outcome:   outcome,
		})
	}

	for _, m := range schema.MetricOrder {
		threshold, ok := metricThresholds[m]
		if !ok {
			continue
		}
		value := metrics[m]
		outcome := schema.Passed
		if value > threshold {
			outcome = schema.Failed
			passed = false
		}
		results = append(results, schema.EvaluationResult{
			Kind:      schema.MetricKind,
			Name:      string(m),
			Value:     value,
			Threshold: threshold,
			Outcome:   outcome,
		})
	}

	return results, passed
}
