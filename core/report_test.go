package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReportJSON = `{
	"categories": {
		"performance": {"score": 0.95},
		"accessibility": {"score": 1},
		"best-practices": {"score": 0.93},
		"seo": {"score": 0.9}
	},
	"audits": {
		"first-contentful-paint": {"numericValue": 1200},
		"largest-contentful-paint": {"numericValue": 2000},
		"max-potential-fid": {"numericValue": 80},
		"cumulative-layout-shift": {"numericValue": 0.05},
		"speed-index": {"numericValue": 3000},
		"interactive": {"numericValue": 3500}
	}
}`

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lighthouse-report.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReportMissingFile(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportMissing)
}

func TestLoadReportMalformedJSON(t *testing.T) {
	path := writeReport(t, "{not json")

	_, err := LoadReport(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportParse)
}

func TestLoadReportValid(t *testing.T) {
	path := writeReport(t, validReportJSON)

	rep, err := LoadReport(path)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Len(t, rep.Categories, 4)
	assert.Len(t, rep.Audits, 6)
}

func TestExtractScoreSetRoundsToNearest(t *testing.T) {
	path := writeReport(t, `{
		"categories": {
			"performance": {"score": 0.895},
			"accessibility": {"score": 0.904},
			"best-practices": {"score": 1},
			"seo": {"score": 0}
		},
		"audits": {}
	}`)

	rep, err := LoadReport(path)
	require.NoError(t, err)

	scores, err := ExtractScoreSet(rep)
	require.NoError(t, err)

	// 0.895 rounds up to 90 (ties away from zero), 0.904 rounds down to 90.
	assert.Equal(t, 90, scores[schema.PerformanceCategory])
	assert.Equal(t, 90, scores[schema.AccessibilityCategory])
	assert.Equal(t, 100, scores[schema.BestPracticesCategory])
	assert.Equal(t, 0, scores[schema.SEOCategory])
}

func TestExtractScoreSetMissingCategory(t *testing.T) {
	path := writeReport(t, `{"categories": {"performance": {"score": 0.9}}, "audits": {}}`)

	rep, err := LoadReport(path)
	require.NoError(t, err)

	_, err = ExtractScoreSet(rep)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportShape)
}

func TestExtractScoreSetNullScore(t *testing.T) {
	path := writeReport(t, `{
		"categories": {
			"performance": {"score": null},
			"accessibility": {"score": 1},
			"best-practices": {"score": 1},
			"seo": {"score": 1}
		},
		"audits": {}
	}`)

	rep, err := LoadReport(path)
	require.NoError(t, err)

	_, err = ExtractScoreSet(rep)
	assert.ErrorIs(t, err, ErrReportShape)
}

func TestExtractMetricSet(t *testing.T) {
	path := writeReport(t, validReportJSON)

	rep, err := LoadReport(path)
	require.NoError(t, err)

	metrics, err := ExtractMetricSet(rep)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, metrics[schema.FirstContentfulPaint])
	assert.Equal(t, 0.05, metrics[schema.CumulativeLayoutShift])
}

func TestExtractMetricSetMissingAudit(t *testing.T) {
	path := writeReport(t, `{
		"categories": {},
		"audits": {"first-contentful-paint": {"numericValue": 1200}}
	}`)

	rep, err := LoadReport(path)
	require.NoError(t, err)

	_, err = ExtractMetricSet(rep)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportShape)
}
