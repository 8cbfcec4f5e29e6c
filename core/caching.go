package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cachedSeries is the JSON payload stored per series key.
type cachedSeries struct {
	Points    schema.DenseSeries `json:"points"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// seriesKey identifies a series in the cache, e.g. "annual" or "monthly:2023".
func seriesKey(kind schema.SeriesKind, year int) string {
	if kind == schema.MonthlySeries {
		return fmt.Sprintf("%s:%d", kind, year)
	}
	return string(kind)
}

// seriesStore returns the series cache or nil when caching is off.
func seriesStore(mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetSeriesStore()
}

// historyStore returns the fetch history store or nil when history is off.
func historyStore(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// checkCacheHit attempts to retrieve and validate a cached series.
// A ttl of zero means entries never expire.
func checkCacheHit(store contract.CacheStore, kind schema.SeriesKind, year int, domain schema.Domain, ttl time.Duration, now time.Time) (schema.SeriesResult, bool) {
	data, version, ts, err := store.Get(seriesKey(kind, year))
	if err != nil {
		return schema.SeriesResult{}, false // Cache miss
	}
	if version != currentCacheVersion {
		return schema.SeriesResult{}, false
	}
	if ttl > 0 && now.Sub(time.Unix(ts, 0)) > ttl {
		return schema.SeriesResult{}, false // Stale
	}

	var entry cachedSeries
	if err := json.Unmarshal(data, &entry); err != nil {
		return schema.SeriesResult{}, false
	}
	// A payload that does not cover the domain would break the dense invariant
	if len(entry.Points) != domain.Len() || entry.Points[0].Key != domain.Start {
		return schema.SeriesResult{}, false
	}

	return schema.SeriesResult{
		Kind:      kind,
		Year:      year,
		Domain:    domain,
		Points:    entry.Points,
		FetchedAt: entry.FetchedAt,
		Cached:    true,
	}, true
}

// storeSeries writes a freshly fetched series through to the cache.
func storeSeries(store contract.CacheStore, result schema.SeriesResult) error {
	data, err := json.Marshal(cachedSeries{Points: result.Points, FetchedAt: result.FetchedAt})
	if err != nil {
		return err
	}
	return store.Set(seriesKey(result.Kind, result.Year), data, currentCacheVersion, result.FetchedAt.Unix())
}
