// Package iocache persists dense series and fetch history across runs.
package iocache

import (
	"sync"

	"github.com/huangsam/libstats/internal/contract"
)

// CacheStoreManager manages the series cache and the fetch history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	series       contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetSeriesStore returns the series CacheStore, or nil when caching is disabled.
func (mgr *CacheStoreManager) GetSeriesStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.series
}

// GetHistoryStore returns the HistoryStore, or nil when history is disabled.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// NewCacheStoreManager wraps already opened stores. Either store may be nil.
func NewCacheStoreManager(series contract.CacheStore, history contract.HistoryStore) *CacheStoreManager {
	return &CacheStoreManager{series: series, history: history}
}
