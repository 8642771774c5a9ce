package histstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateHistory brings the history schema for a SQL backend up to date.
// The json and none backends have no schema and are rejected.
func MigrateHistory(backend schema.DatabaseBackend, connStr string) error {
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
		return fmt.Errorf("history backend %s has no database schema to migrate", backend)
	}

	if backend != schema.SQLiteBackend && connStr == "" {
		return fmt.Errorf("%s history backend requires a connection string", backend)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", backend, err)
	}

	dbDriver, err := migrationTarget(backend, db)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(backend), dbDriver)
	if err != nil {
		return fmt.Errorf("failed to prepare migration runner: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply history migrations: %w", err)
	}
	return nil
}

func migrationTarget(backend schema.DatabaseBackend, db *sql.DB) (database.Driver, error) {
	switch backend {
	case schema.SQLiteBackend:
		d, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to prepare sqlite migration driver: %w", err)
		}
		return d, nil
	case schema.MySQLBackend:
		d, err := migratemysql.WithInstance(db, &migratemysql.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to prepare mysql migration driver: %w", err)
		}
		return d, nil
	case schema.PostgreSQLBackend:
		d, err := migratepgx.WithInstance(db, &migratepgx.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to prepare postgresql migration driver: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported migration backend: %s", backend)
	}
}
