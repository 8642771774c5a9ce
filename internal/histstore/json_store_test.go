package histstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(commit string, perf int) schema.HistoryEntry {
	return schema.HistoryEntry{
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Commit:    commit,
		Branch:    "main",
		Scores: schema.ScoreSet{
			schema.PerformanceCategory:   perf,
			schema.AccessibilityCategory: 100,
			schema.BestPracticesCategory: 100,
			schema.SEOCategory:           100,
		},
		Metrics: schema.MetricSet{
			schema.FirstContentfulPaint:   1200,
			schema.LargestContentfulPaint: 2100,
			schema.MaxPotentialFID:        80,
			schema.CumulativeLayoutShift:  0.05,
			schema.SpeedIndex:             3000,
			schema.Interactive:            3500,
		},
	}
}

func TestJSONStoreLoadMissingDocument(t *testing.T) {
	store := NewJSONHistoryStore(filepath.Join(t.TempDir(), "history.json"))

	entries, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJSONStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewJSONHistoryStore(filepath.Join(t.TempDir(), "history.json"))

	saved := []schema.HistoryEntry{testEntry("aaa1111", 90), testEntry("bbb2222", 95)}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "aaa1111", loaded[0].Commit)
	assert.Equal(t, "bbb2222", loaded[1].Commit)
	assert.Equal(t, 95, loaded[1].Scores[schema.PerformanceCategory])
	assert.Equal(t, 0.05, loaded[1].Metrics[schema.CumulativeLayoutShift])
}

func TestJSONStoreLoadCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONHistoryStore(path).Load()
	assert.Error(t, err)
}

func TestJSONStoreSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.json")
	store := NewJSONHistoryStore(path)

	require.NoError(t, store.Save([]schema.HistoryEntry{testEntry("ccc3333", 88)}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
}

func TestJSONStoreStatus(t *testing.T) {
	store := NewJSONHistoryStore(filepath.Join(t.TempDir(), "history.json"))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "json", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	require.NoError(t, store.Save([]schema.HistoryEntry{testEntry("aaa1111", 90)}))
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEntries)
	assert.False(t, status.LastEntryTime.IsZero())
}

func TestJSONStoreClear(t *testing.T) {
	store := NewJSONHistoryStore(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, store.Save([]schema.HistoryEntry{testEntry("aaa1111", 90)}))

	require.NoError(t, store.Clear())
	entries, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing again is not an error
	require.NoError(t, store.Clear())
}

func TestNewHistoryStoreBackendSelection(t *testing.T) {
	jsonStore, err := NewHistoryStore(schema.JSONBackend, "", filepath.Join(t.TempDir(), "h.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONHistoryStore{}, jsonStore)

	noop, err := NewHistoryStore(schema.NoneBackend, "", "")
	require.NoError(t, err)
	require.NoError(t, noop.Save([]schema.HistoryEntry{testEntry("aaa1111", 90)}))
	entries, err := noop.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = NewHistoryStore(schema.DatabaseBackend("redis"), "", "")
	assert.Error(t, err)
}
