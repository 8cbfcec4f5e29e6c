// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/libstats/schema"
)

// CountsClient defines the operations needed against the counts API.
// This allows the dashboard logic to be tested without a running server.
type CountsClient interface {
	// FetchAnnual returns the borrow counts per year as reported by the server.
	FetchAnnual(ctx context.Context) (schema.SparseSeries, error)

	// FetchMonthly returns the borrow counts per month of the given year.
	FetchMonthly(ctx context.Context, year int) (schema.SparseSeries, error)
}

// CacheManager defines the interface for managing the persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetSeriesStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for recording fetch attempts.
type HistoryStore interface {
	// RecordFetch stores one fetch attempt and returns its unique ID
	RecordFetch(record schema.FetchRecord) (int64, error)

	// GetAllFetches returns every recorded fetch ordered by ID
	GetAllFetches() ([]schema.FetchRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
