package core

import (
	"fmt"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// NewHistoryEntry builds the snapshot for the current run.
func NewHistoryEntry(now time.Time, commit, branch string, scores schema.ScoreSet, metrics schema.MetricSet) schema.HistoryEntry {
	return schema.HistoryEntry{
		Timestamp: now.UTC(),
		Commit:    commit,
		Branch:    branch,
		Scores:    scores,
		Metrics:   metrics,
	}
}

// AppendCapped appends entry to entries and evicts the oldest entries (FIFO)
// so the returned log never exceeds limit. The input slice is not mutated;
// relative order of the surviving entries is preserved.
func AppendCapped(entries []schema.HistoryEntry, entry schema.HistoryEntry, limit int) []schema.HistoryEntry {
	combined := make([]schema.HistoryEntry, 0, len(entries)+1)
	combined = append(combined, entries...)
	combined = append(combined, entry)
	if limit > 0 && len(combined) > limit {
		combined = combined[len(combined)-limit:]
	}
	return combined
}

// RecordHistory loads the persisted log, appends the entry with the cap
// applied, and rewrites the log in full. Callers treat any error as advisory:
// history failures never change the gate outcome or abort the run.
func RecordHistory(store contract.HistoryStore, entry schema.HistoryEntry) error {
	entries, err := store.Load()
	if err != nil {
		return fmt.Errorf("could not load history: %w", err)
	}
	if err := store.Save(AppendCapped(entries, entry, schema.HistoryCap)); err != nil {
		return fmt.Errorf("could not save history: %w", err)
	}
	return nil
}
