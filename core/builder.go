package core

import (
	"fmt"
	"os"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// GateResultBuilder builds the gate result using a builder pattern.
type GateResultBuilder struct {
	cfg     *contract.Config
	report  *schema.LighthouseReport
	scores  schema.ScoreSet
	metrics schema.MetricSet
	result  *schema.GateResult
}

// NewGateResultBuilder creates a new builder for gate results.
func NewGateResultBuilder(cfg *contract.Config) *GateResultBuilder {
	return &GateResultBuilder{cfg: cfg}
}

// ValidatePrerequisites checks that the report document exists before any
// parsing is attempted. Its absence is a fatal precondition, not retried.
func (b *GateResultBuilder) ValidatePrerequisites() (*GateResultBuilder, error) {
	if _, err := os.Stat(b.cfg.ReportPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s. Run Lighthouse first to produce it", ErrReportMissing, b.cfg.ReportPath)
		}
		return nil, fmt.Errorf("%w at %s: %v", ErrReportMissing, b.cfg.ReportPath, err)
	}
	return b, nil
}

// LoadReport reads and parses the report document.
func (b *GateResultBuilder) LoadReport() (*GateResultBuilder, error) {
	rep, err := LoadReport(b.cfg.ReportPath)
	if err != nil {
		return nil, err
	}
	b.report = rep
	return b, nil
}

// ExtractSets derives the ScoreSet and MetricSet from the parsed report.
func (b *GateResultBuilder) ExtractSets() (*GateResultBuilder, error) {
	scores, err := ExtractScoreSet(b.report)
	if err != nil {
		return nil, err
	}
	metrics, err := ExtractMetricSet(b.report)
	if err != nil {
		return nil, err
	}
	b.scores = scores
	b.metrics = metrics
	return b, nil
}

// BuildResult evaluates all thresholds and assembles the final result.
func (b *GateResultBuilder) BuildResult() *GateResultBuilder {
	results, passed := Evaluate(b.scores, b.metrics, b.cfg.ScoreThresholds, b.cfg.MetricThresholds)
	b.result = &schema.GateResult{
		Passed:           passed,
		Results:          results,
		Scores:           b.scores,
		Metrics:          b.metrics,
		ScoreThresholds:  b.cfg.ScoreThresholds,
		MetricThresholds: b.cfg.MetricThresholds,
		ReportPath:       b.cfg.ReportPath,
		Commit:           b.cfg.Commit,
		Branch:           b.cfg.Branch,
	}
	return b
}

// GetResult returns the built result, or nil before BuildResult has run.
func (b *GateResultBuilder) GetResult() *schema.GateResult {
	return b.result
}
