package core

import (
	"errors"

	"github.com/perfgate/perfgate/schema"
	"gonum.org/v1/gonum/stat"
)

// ErrNoHistory means the history log has no entries to aggregate.
var ErrNoHistory = errors.New("history log is empty")

// ComputeHistoryStats aggregates mean, standard deviation, min/max and the
// latest delta for every score and metric series across the history log.
// Entries are assumed to be in append order (oldest first).
func ComputeHistoryStats(entries []schema.HistoryEntry) (*schema.HistoryStats, error) {
	if len(entries) == 0 {
		return nil, ErrNoHistory
	}

	stats := &schema.HistoryStats{Entries: len(entries)}

	for _, cat := range schema.ScoreOrder {
		series := make([]float64, 0, len(entries))
		for _, e := range entries {
			series = append(series, float64(e.Scores[cat]))
		}
		stats.Scores = append(stats.Scores, seriesStats(string(cat), series))
	}

	for _, m := range schema.MetricOrder {
		series := make([]float64, 0, len(entries))
		for _, e := range entries {
			series = append(series, e.Metrics[m])
		}
		stats.Metrics = append(stats.Metrics, seriesStats(string(m), series))
	}

	return stats, nil
}

// seriesStats reduces one ordered series to its aggregate statistics.
func seriesStats(name string, series []float64) schema.MetricStats {
	s := schema.MetricStats{
		Name:   name,
		Mean:   stat.Mean(series, nil),
		Latest: series[len(series)-1],
		Min:    series[0],
		Max:    series[0],
	}
	if len(series) > 1 {
		s.StdDev = stat.StdDev(series, nil)
		s.Delta = series[len(series)-1] - series[len(series)-2]
	}
	for _, v := range series {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}
