package histstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/perfgate/perfgate/schema"
)

// JSONHistoryStore persists the history log as a single JSON document.
// This is the default backend and matches what CI workflows commit as a
// build artifact.
type JSONHistoryStore struct {
	path string
}

// NewJSONHistoryStore creates a store backed by the given document path.
func NewJSONHistoryStore(path string) *JSONHistoryStore {
	return &JSONHistoryStore{path: path}
}

// Load reads the full history log. A missing document is not an error;
// it simply means no runs have been recorded yet.
func (s *JSONHistoryStore) Load() ([]schema.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history document %s: %w", s.path, err)
	}

	var entries []schema.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history document %s: %w", s.path, err)
	}
	return entries, nil
}

// Save rewrites the history document in full.
func (s *JSONHistoryStore) Save(entries []schema.HistoryEntry) error {
	if entries == nil {
		entries = []schema.HistoryEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history entries: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history document %s: %w", s.path, err)
	}
	return nil
}

// GetStatus reports the state of the history document.
func (s *JSONHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{Backend: string(schema.JSONBackend)}

	entries, err := s.Load()
	if err != nil {
		return status, err
	}

	status.Connected = true
	status.TotalEntries = len(entries)
	if len(entries) > 0 {
		status.OldestEntryTime = entries[0].Timestamp
		status.LastEntryTime = entries[len(entries)-1].Timestamp
	}
	return status, nil
}

// Clear removes the history document.
func (s *JSONHistoryStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history document %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *JSONHistoryStore) Close() error {
	return nil
}
