package cmd

import (
	"fmt"

	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/internal/histstore"
	"github.com/perfgate/perfgate/internal/outwriter"
	"github.com/perfgate/perfgate/internal/parquet"
	"github.com/perfgate/perfgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultExportFile is where history exports land when --output-file is unset.
const defaultExportFile = "performance-history.parquet"

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")
	historyPath := viper.GetString("history-file")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize persistence with the loaded config
	if err := histstore.InitStores(backend, connStr, historyPath); err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.HistoryPath = historyPath
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.UseColors = true
	if colors, err := contract.ParseBoolString(viper.GetString("color")); err == nil {
		cfg.UseColors = colors
	}

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on history log management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by the gate command. This avoids report validation
// and threshold processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the performance history log",
	Long: `Manage the history log that records every gate run.

Each gate run appends one snapshot (timestamp, commit, branch, scores, metrics).
The log is capped at 50 entries; the oldest entry is evicted first.

Supported backends: JSON document (default), SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  show    - Print the recorded runs
  status  - Show backend statistics and connection info
  clear   - Remove all recorded runs
  export  - Export runs to Parquet for analytics
  stats   - Aggregate statistics across runs
  migrate - Run database schema migrations

Examples:
  # Inspect recent runs
  perfgate history show

  # Export for analysis in pandas/DuckDB
  perfgate history export --output-file history.parquet`,
}

// historyShowCmd prints the recorded runs.
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the recorded gate runs, oldest first",
	Long: `Print every recorded gate run in append order.

Each row shows the run timestamp, commit, branch, category scores and the
headline metrics. Use --output json or --output csv for the full series.

Examples:
  # Human-readable table
  perfgate history show

  # Full data for scripting
  perfgate history show --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		entries, err := histstore.Manager.GetHistoryStore().Load()
		if err != nil {
			contract.LogFatal("Failed to load history", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteHistory(entries, cfg); err != nil {
			contract.LogFatal("Failed to write history", err)
		}
	},
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show detailed information about the history store.

Displays:
- Backend type and connection status
- Total number of recorded runs (of the 50-entry cap)
- Oldest and latest run timestamps

Examples:
  # Check history status
  perfgate history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := histstore.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write history status", err)
		}
	},
}

// historyClearCmd clears the history log.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded gate runs",
	Long: `Delete the entire history log from the configured backend.

For JSON: Deletes the history document
For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history table

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  perfgate history export --output-file backup.parquet
  perfgate history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := histstore.ClearHistory(cfg.HistoryBackend, cfg.HistoryPath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports history data to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to a Parquet file",
	Long: `Export the full history log to a Parquet file for analytics.

One row is written per recorded run, with scores and metrics flattened into
columns. The output loads directly into pandas, DuckDB or Spark.

Examples:
  # Export to the default file name
  perfgate history export

  # Export to an explicit path
  perfgate history export --output-file runs.parquet`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		entries, err := histstore.Manager.GetHistoryStore().Load()
		if err != nil {
			contract.LogFatal("Failed to load history", err)
		}

		outputFile := cfg.OutputFile
		if outputFile == "" {
			outputFile = defaultExportFile
		}

		records := parquet.ConvertHistoryEntries(entries)
		if err := parquet.WriteHistoryParquet(records, outputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
		fmt.Printf("Exported %d run(s) to %s\n", len(records), outputFile)
	},
}

// historyStatsCmd aggregates statistics across runs.
var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate statistics across recorded runs",
	Long: `Compute aggregate statistics over the history log.

For every category score and metric series, shows the mean, standard
deviation, min, max, latest value and the delta against the previous run.

Examples:
  # Human-readable table
  perfgate history stats

  # Full precision for scripting
  perfgate history stats --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		entries, err := histstore.Manager.GetHistoryStore().Load()
		if err != nil {
			contract.LogFatal("Failed to load history", err)
		}

		stats, err := core.ComputeHistoryStats(entries)
		if err != nil {
			contract.LogFatal("Failed to compute history stats", err)
		}

		ow := outwriter.NewOutWriter()
		if err := ow.WriteStats(stats, cfg); err != nil {
			contract.LogFatal("Failed to write history stats", err)
		}
	},
}

// historyMigrateCmd runs database schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history database schema migrations",
	Long: `Bring the history database schema up to date.

Only meaningful for the SQLite, MySQL and PostgreSQL backends. Migrations are
embedded in the binary and applied in order; running twice is a no-op.

Examples:
  # Migrate the default SQLite database
  PERFGATE_HISTORY_BACKEND=sqlite perfgate history migrate

  # Migrate a PostgreSQL database
  PERFGATE_HISTORY_BACKEND=postgresql PERFGATE_HISTORY_DB_CONNECT="host=... dbname=..." perfgate history migrate`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := histstore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to migrate history schema", err)
		}
		fmt.Println("History schema is up to date.")
	},
}
