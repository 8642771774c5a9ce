package schema

import "time"

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
}

// MetricStats holds aggregate statistics for a single score or metric series.
type MetricStats struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Latest float64 `json:"latest"`
	Delta  float64 `json:"delta"` // latest minus previous entry, 0 with fewer than 2 entries
}

// HistoryStats aggregates statistics over the whole history log.
type HistoryStats struct {
	Entries int           `json:"entries"`
	Scores  []MetricStats `json:"scores"`
	Metrics []MetricStats `json:"metrics"`
}
