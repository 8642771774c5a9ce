package histstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver (pure Go)

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// createHistoryTable works across SQLite, MySQL and PostgreSQL. Rows carry
// an explicit position so the append order survives a full rewrite without
// relying on autoincrement semantics.
const createHistoryTable = `CREATE TABLE IF NOT EXISTS ` + historyTable + ` (
	id BIGINT PRIMARY KEY,
	run_timestamp TEXT NOT NULL,
	commit_ref TEXT NOT NULL,
	branch_ref TEXT NOT NULL,
	scores_json TEXT NOT NULL,
	metrics_json TEXT NOT NULL
)`

// SQLHistoryStore persists the history log in a relational database.
// Save rewrites all rows transactionally so the on-disk state always
// matches the capped in-memory log.
type SQLHistoryStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

// NewSQLHistoryStore opens a connection for the given backend and ensures
// the history table exists.
func NewSQLHistoryStore(backend schema.DatabaseBackend, connStr string) (*SQLHistoryStore, error) {
	var driverName string
	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		if connStr == "" {
			connStr = contract.GetHistoryDBFilePath()
		}
	case schema.MySQLBackend:
		driverName = "mysql"
	case schema.PostgreSQLBackend:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported SQL history backend: %s", backend)
	}

	if backend != schema.SQLiteBackend && connStr == "" {
		return nil, fmt.Errorf("%s history backend requires a connection string", backend)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", backend, err)
	}

	store := &SQLHistoryStore{db: db, backend: backend}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLHistoryStore) ensureSchema() error {
	if _, err := s.db.Exec(createHistoryTable); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}

// placeholders renders positional parameters for the active backend.
// PostgreSQL needs numbered placeholders; MySQL and SQLite take '?'.
func (s *SQLHistoryStore) placeholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		if s.backend == schema.PostgreSQLBackend {
			out += fmt.Sprintf("$%d", i)
		} else {
			out += "?"
		}
	}
	return out
}

// Load reads the full history log in append order.
func (s *SQLHistoryStore) Load() ([]schema.HistoryEntry, error) {
	query := fmt.Sprintf(
		"SELECT run_timestamp, commit_ref, branch_ref, scores_json, metrics_json FROM %s ORDER BY id",
		historyTable)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query history rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schema.HistoryEntry
	for rows.Next() {
		var ts, commit, branch, scoresJSON, metricsJSON string
		if err := rows.Scan(&ts, &commit, &branch, &scoresJSON, &metricsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		entry := schema.HistoryEntry{Commit: commit, Branch: branch}
		entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history timestamp %q: %w", ts, err)
		}
		if err := json.Unmarshal([]byte(scoresJSON), &entry.Scores); err != nil {
			return nil, fmt.Errorf("failed to decode stored scores: %w", err)
		}
		if err := json.Unmarshal([]byte(metricsJSON), &entry.Metrics); err != nil {
			return nil, fmt.Errorf("failed to decode stored metrics: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return entries, nil
}

// Save rewrites the persisted log in full within a single transaction.
func (s *SQLHistoryStore) Save(entries []schema.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", historyTable)); err != nil {
		return fmt.Errorf("failed to clear history rows: %w", err)
	}

	insert := fmt.Sprintf(
		"INSERT INTO %s (id, run_timestamp, commit_ref, branch_ref, scores_json, metrics_json) VALUES (%s)",
		historyTable, s.placeholders(6))

	for i, entry := range entries {
		scoresJSON, err := json.Marshal(entry.Scores)
		if err != nil {
			return fmt.Errorf("failed to encode scores: %w", err)
		}
		metricsJSON, err := json.Marshal(entry.Metrics)
		if err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}

		_, err = tx.Exec(insert,
			int64(i+1),
			entry.Timestamp.UTC().Format(time.RFC3339Nano),
			entry.Commit,
			entry.Branch,
			string(scoresJSON),
			string(metricsJSON))
		if err != nil {
			return fmt.Errorf("failed to insert history row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history transaction: %w", err)
	}
	return nil
}

// GetStatus reports connectivity and row counts for the database.
func (s *SQLHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{Backend: string(s.backend)}

	if err := s.db.Ping(); err != nil {
		return status, fmt.Errorf("failed to ping %s database: %w", s.backend, err)
	}
	status.Connected = true

	row := s.db.QueryRow(fmt.Sprintf(
		"SELECT COUNT(*), COALESCE(MIN(run_timestamp), ''), COALESCE(MAX(run_timestamp), '') FROM %s",
		historyTable))

	var count int
	var oldest, latest string
	if err := row.Scan(&count, &oldest, &latest); err != nil {
		return status, fmt.Errorf("failed to count history rows: %w", err)
	}

	status.TotalEntries = count
	if oldest != "" {
		if ts, err := time.Parse(time.RFC3339Nano, oldest); err == nil {
			status.OldestEntryTime = ts
		}
	}
	if latest != "" {
		if ts, err := time.Parse(time.RFC3339Nano, latest); err == nil {
			status.LastEntryTime = ts
		}
	}
	return status, nil
}

// Clear removes all history rows but keeps the table.
func (s *SQLHistoryStore) Clear() error {
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", historyTable)); err != nil {
		return fmt.Errorf("failed to clear history rows: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLHistoryStore) Close() error {
	return s.db.Close()
}
