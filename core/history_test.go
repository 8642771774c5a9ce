package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryWithCommit(commit string) schema.HistoryEntry {
	return schema.HistoryEntry{
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Commit:    commit,
		Branch:    "main",
		Scores:    schema.ScoreSet{schema.PerformanceCategory: 95},
		Metrics:   schema.MetricSet{schema.Interactive: 3000},
	}
}

func TestAppendCappedUnderCap(t *testing.T) {
	entries := []schema.HistoryEntry{entryWithCommit("a"), entryWithCommit("b")}

	out := AppendCapped(entries, entryWithCommit("c"), schema.HistoryCap)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Commit)
	assert.Equal(t, "c", out[2].Commit)
}

func TestAppendCappedEvictsOldestFirst(t *testing.T) {
	entries := make([]schema.HistoryEntry, 0, schema.HistoryCap)
	for i := range schema.HistoryCap {
		entries = append(entries, entryWithCommit(fmt.Sprintf("c%d", i)))
	}

	out := AppendCapped(entries, entryWithCommit("newest"), schema.HistoryCap)

	// Still exactly at the cap, with the entry previously at position 0 gone.
	require.Len(t, out, schema.HistoryCap)
	assert.Equal(t, "c1", out[0].Commit)
	assert.Equal(t, "newest", out[len(out)-1].Commit)

	// Relative order of survivors is preserved.
	for i := 0; i < len(out)-1; i++ {
		if i < len(out)-2 {
			assert.Equal(t, fmt.Sprintf("c%d", i+1), out[i].Commit)
		}
	}
}

func TestAppendCappedDoesNotMutateInput(t *testing.T) {
	entries := []schema.HistoryEntry{entryWithCommit("a")}
	_ = AppendCapped(entries, entryWithCommit("b"), schema.HistoryCap)

	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Commit)
}

func TestAppendCappedIntoEmptyLog(t *testing.T) {
	out := AppendCapped(nil, entryWithCommit("first"), schema.HistoryCap)
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Commit)
}

func TestNewHistoryEntryUsesUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2026, 8, 1, 8, 0, 0, 0, loc)
	entry := NewHistoryEntry(now, "abc", "main", schema.ScoreSet{}, schema.MetricSet{})

	assert.Equal(t, time.UTC, entry.Timestamp.Location())
	assert.True(t, entry.Timestamp.Equal(now))
}

// fakeHistoryStore is an in-memory HistoryStore for testing RecordHistory.
type fakeHistoryStore struct {
	entries []schema.HistoryEntry
	loadErr error
	saveErr error
	saved   [][]schema.HistoryEntry
}

func (f *fakeHistoryStore) Load() ([]schema.HistoryEntry, error) {
	return f.entries, f.loadErr
}

func (f *fakeHistoryStore) Save(entries []schema.HistoryEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries = entries
	f.saved = append(f.saved, entries)
	return nil
}

func (f *fakeHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	return schema.HistoryStatus{}, nil
}

func (f *fakeHistoryStore) Clear() error { return nil }
func (f *fakeHistoryStore) Close() error { return nil }

func TestRecordHistoryAppendsOnce(t *testing.T) {
	store := &fakeHistoryStore{entries: []schema.HistoryEntry{entryWithCommit("a")}}

	require.NoError(t, RecordHistory(store, entryWithCommit("b")))
	require.Len(t, store.saved, 1)
	require.Len(t, store.entries, 2)
	assert.Equal(t, "b", store.entries[1].Commit)
}

func TestRecordHistoryPropagatesLoadError(t *testing.T) {
	store := &fakeHistoryStore{loadErr: errors.New("disk gone")}

	err := RecordHistory(store, entryWithCommit("b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not load history")
	assert.Empty(t, store.saved, "no save should be attempted after a failed load")
}

func TestRecordHistoryPropagatesSaveError(t *testing.T) {
	store := &fakeHistoryStore{saveErr: errors.New("read-only fs")}

	err := RecordHistory(store, entryWithCommit("b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not save history")
}
