package schema

import "time"

// CacheStatus represents the status of the series cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the fetch history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalFetches  int              `json:"total_fetches"`
	FailedFetches int              `json:"failed_fetches"`
	LastFetchID   int64            `json:"last_fetch_id"`
	LastFetchTime time.Time        `json:"last_fetch_time"`
	OldestFetch   time.Time        `json:"oldest_fetch_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// FetchRecord is one row of the fetch history.
type FetchRecord struct {
	FetchID    int64       `json:"fetch_id"`
	Kind       SeriesKind  `json:"kind"`
	Year       int         `json:"year,omitempty"` // zero for annual fetches
	StartedAt  time.Time   `json:"started_at"`
	DurationMs int64       `json:"duration_ms"`
	Status     FetchStatus `json:"status"`
	Points     int         `json:"points"`  // points in the raw response
	Dropped    int         `json:"dropped"` // out-of-domain points ignored by the densifier
	Error      string      `json:"error,omitempty"`
}
