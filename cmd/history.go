package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/internal/iocache"
	"github.com/huangsam/libstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromConfig reads and validates the history backend settings.
// An empty backend means fetch history is disabled.
func historyBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	backend := schema.NoneBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'", backend)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config (no series cache for history commands)
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize fetch history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
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

// historyCmd focused on fetch history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the fetch history and its exports",
	Long: `Manage the log of fetches made against the counts service.

When enabled with --history-backend, every fetch is recorded with:
- The series (annual or monthly) and year
- Start time and duration
- Outcome (ok, failed, or stale when superseded by a newer year selection)
- How many points came back and how many were outside the chart range

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show fetch history statistics
  export  - Export the history to Parquet
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Record fetches to SQLite
  libstats dashboard --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  libstats history export --history-backend sqlite --output-file fetches.parquet`,
}

// historyClearCmd clears the fetch history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded fetches",
	Long: `Delete all recorded fetches and the migration bookkeeping.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  libstats history export --output-file backup.parquet
  libstats history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseStores()
		dbPath := sqliteFilePath(cfg.HistoryDBConnect, contract.GetHistoryDBFilePath())
		if err := iocache.ClearHistory(cfg.HistoryBackend, dbPath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear fetch history", err)
		}
		fmt.Println("Fetch history cleared successfully.")
	},
}

// historyStatusCmd shows fetch history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display fetch history statistics and connection details",
	Long: `Show detailed information about the fetch history.

Displays:
- Backend type and connection status
- Total and failed fetches
- Last and oldest fetch timestamps
- Database table sizes

Examples:
  libstats history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get fetch history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports the fetch history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the fetch history to Parquet",
	Long: `Export all recorded fetches to a Parquet file for use with analytics tools.

Requires: --output-file parameter

Examples:
  libstats history export --output-file fetches.parquet
  duckdb -c "SELECT fetch_status, count(*) FROM read_parquet('fetches.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export fetch history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the fetch history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  libstats history migrate --history-backend sqlite

  # Migrate to specific version
  libstats history migrate --history-backend sqlite --target-version 1

  # Rollback to initial state
  libstats history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
