// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/perfgate/perfgate/schema"
)

// HistoryStore defines the interface for history log persistence.
// Load returns the entries in append order (oldest first). Save rewrites the
// persisted log in full; the caller is responsible for applying the cap
// before saving so that the cap-and-append logic stays pure and testable.
type HistoryStore interface {
	Load() ([]schema.HistoryEntry, error)
	Save(entries []schema.HistoryEntry) error
	GetStatus() (schema.HistoryStatus, error)
	Clear() error
	Close() error
}

// StoreManager defines the interface for accessing history stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
}
