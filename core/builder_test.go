package core

import (
	"path/filepath"
	"testing"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderConfig(reportPath string) *contract.Config {
	return &contract.Config{
		ReportPath:       reportPath,
		ScoreThresholds:  schema.DefaultScoreThresholds(),
		MetricThresholds: schema.DefaultMetricThresholds(),
		Commit:           "abc1234",
		Branch:           "main",
	}
}

func TestBuilderFullFlowPasses(t *testing.T) {
	path := writeReport(t, validReportJSON)
	builder := NewGateResultBuilder(builderConfig(path))

	_, err := builder.ValidatePrerequisites()
	require.NoError(t, err)
	_, err = builder.LoadReport()
	require.NoError(t, err)
	_, err = builder.ExtractSets()
	require.NoError(t, err)
	builder.BuildResult()

	result := builder.GetResult()
	require.NotNil(t, result)
	assert.True(t, result.Passed)
	assert.Len(t, result.Results, 10)
	assert.Equal(t, 95, result.Scores[schema.PerformanceCategory])
	assert.Equal(t, "abc1234", result.Commit)
	assert.Equal(t, "main", result.Branch)
	assert.Equal(t, path, result.ReportPath)
}

func TestBuilderMissingReportIsPreconditionFailure(t *testing.T) {
	builder := NewGateResultBuilder(builderConfig(filepath.Join(t.TempDir(), "absent.json")))

	_, err := builder.ValidatePrerequisites()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportMissing)
	assert.Nil(t, builder.GetResult())
}

func TestBuilderShapeErrorSurfacesFromExtract(t *testing.T) {
	path := writeReport(t, `{"categories": {}, "audits": {}}`)
	builder := NewGateResultBuilder(builderConfig(path))

	_, err := builder.ValidatePrerequisites()
	require.NoError(t, err)
	_, err = builder.LoadReport()
	require.NoError(t, err)
	_, err = builder.ExtractSets()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportShape)
}

func TestBuilderFailingReport(t *testing.T) {
	path := writeReport(t, `{
		"categories": {
			"performance": {"score": 0.5},
			"accessibility": {"score": 1},
			"best-practices": {"score": 1},
			"seo": {"score": 1}
		},
		"audits": {
			"first-contentful-paint": {"numericValue": 1200},
			"largest-contentful-paint": {"numericValue": 2000},
			"max-potential-fid": {"numericValue": 80},
			"cumulative-layout-shift": {"numericValue": 0.05},
			"speed-index": {"numericValue": 3000},
			"interactive": {"numericValue": 3500}
		}
	}`)
	builder := NewGateResultBuilder(builderConfig(path))

	_, err := builder.ValidatePrerequisites()
	require.NoError(t, err)
	_, err = builder.LoadReport()
	require.NoError(t, err)
	_, err = builder.ExtractSets()
	require.NoError(t, err)
	builder.BuildResult()

	result := builder.GetResult()
	require.NotNil(t, result)
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.FailedCount())
}
