// Package histstore persists the gate run history.
package histstore

import (
	"sync"

	"github.com/perfgate/perfgate/internal/contract"
)

// StoreManager manages the configured HistoryStore instance.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetHistoryStore returns the configured HistoryStore.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
