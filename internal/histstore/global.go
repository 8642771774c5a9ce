package histstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// historyTable is the name of the table for SQL-backed history storage.
const historyTable = "perfgate_history"

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager with the configured
// history backend. For the json backend, historyPath is the document path;
// for SQL backends, connStr is the connection string.
func InitStores(backend schema.DatabaseBackend, connStr string, historyPath string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewHistoryStore(backend, connStr, historyPath)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}
		Manager.history = store
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// NewHistoryStore returns a HistoryStore for the given backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string, historyPath string) (contract.HistoryStore, error) {
	switch backend {
	case schema.JSONBackend:
		path := historyPath
		if path == "" {
			path = contract.DefaultHistoryPath
		}
		return NewJSONHistoryStore(path), nil

	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewSQLHistoryStore(backend, connStr)

	case schema.NoneBackend:
		return &noopHistoryStore{}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be json, sqlite, mysql, postgresql, or none", backend)
	}
}

// ClearHistory clears the history for the specified backend.
// For json, it deletes the document. For SQLite, it deletes the database
// file. For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, historyPath, connStr string) error {
	switch backend {
	case schema.JSONBackend:
		if historyPath == "" {
			historyPath = contract.DefaultHistoryPath
		}
		if err := os.Remove(historyPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove history document %s: %w", historyPath, err)
		}
		return nil

	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, historyTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, historyTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}

// noopHistoryStore disables history persistence entirely.
type noopHistoryStore struct{}

func (s *noopHistoryStore) Load() ([]schema.HistoryEntry, error) { return nil, nil }
func (s *noopHistoryStore) Save([]schema.HistoryEntry) error     { return nil }
func (s *noopHistoryStore) Clear() error                         { return nil }
func (s *noopHistoryStore) Close() error                         { return nil }
func (s *noopHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	return schema.HistoryStatus{Backend: string(schema.NoneBackend)}, nil
}
