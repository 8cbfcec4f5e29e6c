package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/schema"
)

// fetchHistoryTable is the table holding one row per fetch attempt.
const fetchHistoryTable = "libstats_fetch_history"

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fetch history: %w", err)
	}

	if _, err := db.Exec(getCreateHistoryQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", fetchHistoryTable, err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// getCreateHistoryQuery returns the CREATE TABLE query for the fetch history table.
// It matches the first migration so that stores created on the fly can later be migrated.
func getCreateHistoryQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(fetchHistoryTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				fetch_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				series_kind VARCHAR(16) NOT NULL,
				series_year INT NOT NULL,
				started_at BIGINT NOT NULL,
				duration_ms BIGINT NOT NULL,
				fetch_status VARCHAR(16) NOT NULL,
				points INT NOT NULL,
				dropped INT NOT NULL,
				error_message TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				fetch_id BIGSERIAL PRIMARY KEY,
				series_kind TEXT NOT NULL,
				series_year INTEGER NOT NULL,
				started_at BIGINT NOT NULL,
				duration_ms BIGINT NOT NULL,
				fetch_status TEXT NOT NULL,
				points INTEGER NOT NULL,
				dropped INTEGER NOT NULL,
				error_message TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				fetch_id INTEGER PRIMARY KEY AUTOINCREMENT,
				series_kind TEXT NOT NULL,
				series_year INTEGER NOT NULL,
				started_at INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL,
				fetch_status TEXT NOT NULL,
				points INTEGER NOT NULL,
				dropped INTEGER NOT NULL,
				error_message TEXT
			);
		`, quotedTableName)
	}
}

// RecordFetch stores one fetch attempt and returns its unique ID.
func (hs *HistoryStoreImpl) RecordFetch(record schema.FetchRecord) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(fetchHistoryTable, hs.backend)
	columns := "series_kind, series_year, started_at, duration_ms, fetch_status, points, dropped, error_message"
	args := []any{
		string(record.Kind), record.Year, record.StartedAt.UnixMilli(), record.DurationMs,
		string(record.Status), record.Points, record.Dropped, nullString(record.Error),
	}

	var fetchID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING fetch_id`, quotedTableName, columns, placeholders(hs.backend, len(args)))
		if err := hs.db.QueryRow(query, args...).Scan(&fetchID); err != nil {
			return 0, fmt.Errorf("failed to insert fetch record: %w", err)
		}
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quotedTableName, columns, placeholders(hs.backend, len(args)))
		result, err := hs.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert fetch record: %w", err)
		}
		fetchID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read fetch id: %w", err)
		}
	}

	return fetchID, nil
}

// GetAllFetches retrieves every recorded fetch ordered by ID.
func (hs *HistoryStoreImpl) GetAllFetches() ([]schema.FetchRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT fetch_id, series_kind, series_year, started_at, duration_ms,
		fetch_status, points, dropped, error_message FROM %s ORDER BY fetch_id`, quoteTableName(fetchHistoryTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FetchRecord
	for rows.Next() {
		var (
			record    schema.FetchRecord
			kind      string
			status    string
			startedAt int64
			errMsg    sql.NullString
		)
		if err := rows.Scan(&record.FetchID, &kind, &record.Year, &startedAt, &record.DurationMs,
			&status, &record.Points, &record.Dropped, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan fetch record: %w", err)
		}
		record.Kind = schema.SeriesKind(kind)
		record.Status = schema.FetchStatus(status)
		record.StartedAt = time.UnixMilli(startedAt)
		record.Error = errMsg.String
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetch history: %w", err)
	}

	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(fetchHistoryTable, hs.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := hs.db.QueryRow(countQuery).Scan(&status.TotalFetches); err != nil {
		return status, fmt.Errorf("failed to get total fetches: %w", err)
	}
	status.TableSizes[fetchHistoryTable] = int64(status.TotalFetches)

	if status.TotalFetches == 0 {
		return status, nil
	}

	failedQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE fetch_status = %s", quotedTableName, placeholders(hs.backend, 1))
	if err := hs.db.QueryRow(failedQuery, string(schema.FetchFailed)).Scan(&status.FailedFetches); err != nil {
		return status, fmt.Errorf("failed to get failed fetches: %w", err)
	}

	var lastStarted int64
	lastQuery := fmt.Sprintf("SELECT fetch_id, started_at FROM %s ORDER BY fetch_id DESC LIMIT 1", quotedTableName)
	if err := hs.db.QueryRow(lastQuery).Scan(&status.LastFetchID, &lastStarted); err != nil {
		return status, fmt.Errorf("failed to get last fetch info: %w", err)
	}
	status.LastFetchTime = time.UnixMilli(lastStarted)

	var oldestStarted int64
	oldestQuery := fmt.Sprintf("SELECT started_at FROM %s ORDER BY fetch_id ASC LIMIT 1", quotedTableName)
	if err := hs.db.QueryRow(oldestQuery).Scan(&oldestStarted); err != nil {
		return status, fmt.Errorf("failed to get oldest fetch time: %w", err)
	}
	status.OldestFetch = time.UnixMilli(oldestStarted)

	return status, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
