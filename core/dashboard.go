package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/libstats/core/algo"
	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/schema"
)

// Dashboard owns the annual series, the monthly series and the selected year.
// State only changes through a completed fetch or SelectYear.
type Dashboard struct {
	client contract.CountsClient
	mgr    contract.CacheManager // nil disables caching and history
	ttl    time.Duration

	now     func() time.Time
	logWarn func(msg string, err error)

	mu            sync.RWMutex
	annual        schema.SeriesResult
	monthly       schema.SeriesResult
	selectedYear  int
	monthlyGen    uint64
	cancelMonthly context.CancelFunc
}

// NewDashboard creates a controller for the given year. The year must lie in
// schema.AnnualDomain. Both series start zero-filled and are seeded from the
// series cache when mgr provides one.
func NewDashboard(client contract.CountsClient, mgr contract.CacheManager, year int, ttl time.Duration) *Dashboard {
	d := &Dashboard{
		client:       client,
		mgr:          mgr,
		ttl:          ttl,
		now:          time.Now,
		logWarn:      contract.LogWarn,
		selectedYear: year,
		annual: schema.SeriesResult{
			Kind:   schema.AnnualSeries,
			Domain: schema.AnnualDomain,
			Points: algo.DensifyAnnual(nil),
		},
		monthly: schema.SeriesResult{
			Kind:   schema.MonthlySeries,
			Year:   year,
			Domain: schema.MonthlyDomain,
			Points: algo.DensifyMonthly(nil),
		},
	}
	d.seedFromCache()
	return d
}

func (d *Dashboard) seedFromCache() {
	store := seriesStore(d.mgr)
	if store == nil {
		return
	}
	now := d.now()
	if result, ok := checkCacheHit(store, schema.AnnualSeries, 0, schema.AnnualDomain, d.ttl, now); ok {
		d.annual = result
	}
	if result, ok := checkCacheHit(store, schema.MonthlySeries, d.selectedYear, schema.MonthlyDomain, d.ttl, now); ok {
		d.monthly = result
	}
}

// Refresh fetches the annual series and the monthly series of the selected
// year concurrently. Failures are logged and leave the prior state in place.
func (d *Dashboard) Refresh(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.RefreshAnnual(ctx)
	}()
	go func() {
		defer wg.Done()
		d.RefreshMonthly(ctx)
	}()
	wg.Wait()
}

// RefreshAnnual fetches and applies the annual series.
func (d *Dashboard) RefreshAnnual(ctx context.Context) schema.FetchStatus {
	started := d.now()
	sparse, err := d.client.FetchAnnual(ctx)
	if err != nil {
		d.logWarn("failed to fetch annual counts, keeping previous data", err)
		d.record(schema.FetchRecord{Kind: schema.AnnualSeries, StartedAt: started, Status: schema.FetchFailed, Error: err.Error()})
		return schema.FetchFailed
	}

	result := schema.SeriesResult{
		Kind:      schema.AnnualSeries,
		Domain:    schema.AnnualDomain,
		Points:    algo.DensifyAnnual(sparse),
		FetchedAt: d.now(),
	}
	dropped := d.warnDropped(result, sparse)

	d.mu.Lock()
	d.annual = result
	d.mu.Unlock()

	d.writeThrough(result)
	d.record(schema.FetchRecord{Kind: schema.AnnualSeries, StartedAt: started, Status: schema.FetchOK, Points: len(sparse), Dropped: dropped})
	return schema.FetchOK
}

// RefreshMonthly fetches the monthly series of the currently selected year.
// Any monthly fetch still in flight is cancelled and its result discarded.
func (d *Dashboard) RefreshMonthly(ctx context.Context) schema.FetchStatus {
	fetchCtx, gen, year := d.beginMonthly(ctx)
	return d.fetchMonthly(fetchCtx, gen, year)
}

// SelectYear changes the selected year and fetches its monthly series.
// The last requested year always wins, regardless of completion order.
func (d *Dashboard) SelectYear(ctx context.Context, year int) (schema.FetchStatus, error) {
	if err := contract.ValidateYear(year); err != nil {
		return "", err
	}
	d.mu.Lock()
	d.selectedYear = year
	d.mu.Unlock()
	return d.RefreshMonthly(ctx), nil
}

// beginMonthly cancels the previous monthly fetch and opens a new generation.
func (d *Dashboard) beginMonthly(ctx context.Context) (context.Context, uint64, int) {
	fetchCtx, cancel := context.WithCancel(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancelMonthly != nil {
		d.cancelMonthly()
	}
	d.monthlyGen++
	d.cancelMonthly = cancel
	return fetchCtx, d.monthlyGen, d.selectedYear
}

func (d *Dashboard) fetchMonthly(ctx context.Context, gen uint64, year int) schema.FetchStatus {
	started := d.now()
	sparse, err := d.client.FetchMonthly(ctx, year)

	result := schema.SeriesResult{
		Kind:      schema.MonthlySeries,
		Year:      year,
		Domain:    schema.MonthlyDomain,
		Points:    algo.DensifyMonthly(sparse),
		FetchedAt: d.now(),
	}

	d.mu.Lock()
	current := gen == d.monthlyGen
	if current {
		d.cancelMonthly()
		d.cancelMonthly = nil
		if err == nil {
			d.monthly = result
		}
	}
	d.mu.Unlock()

	record := schema.FetchRecord{Kind: schema.MonthlySeries, Year: year, StartedAt: started, Points: len(sparse)}
	switch {
	case !current:
		record.Status = schema.FetchStale
		if err != nil {
			record.Error = err.Error()
		}
		d.record(record)
		return schema.FetchStale
	case err != nil:
		d.logWarn(fmt.Sprintf("failed to fetch monthly counts for %d, keeping previous data", year), err)
		record.Status = schema.FetchFailed
		record.Error = err.Error()
		d.record(record)
		return schema.FetchFailed
	}

	record.Dropped = d.warnDropped(result, sparse)
	record.Status = schema.FetchOK
	d.writeThrough(result)
	d.record(record)
	return schema.FetchOK
}

// warnDropped logs points the densifier ignored and returns how many there were.
func (d *Dashboard) warnDropped(result schema.SeriesResult, sparse schema.SparseSeries) int {
	dropped := algo.Dropped(result.Domain, sparse)
	if len(dropped) > 0 {
		d.logWarn(fmt.Sprintf("ignored %s points", result.Kind),
			fmt.Errorf("%d point(s) outside %d-%d", len(dropped), result.Domain.Start, result.Domain.End))
	}
	return len(dropped)
}

func (d *Dashboard) writeThrough(result schema.SeriesResult) {
	store := seriesStore(d.mgr)
	if store == nil {
		return
	}
	if err := storeSeries(store, result); err != nil {
		d.logWarn("failed to cache series", err)
	}
}

func (d *Dashboard) record(record schema.FetchRecord) {
	store := historyStore(d.mgr)
	if store == nil {
		return
	}
	record.DurationMs = d.now().Sub(record.StartedAt).Milliseconds()
	if _, err := store.RecordFetch(record); err != nil {
		d.logWarn("failed to record fetch", err)
	}
}

// SelectedYear returns the year whose monthly series is requested.
func (d *Dashboard) SelectedYear() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selectedYear
}

// YearOptions returns the keys of the annual series, i.e. the selectable years.
func (d *Dashboard) YearOptions() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return schema.YearsOf(d.annual.Points)
}

// Annual returns the current annual series.
func (d *Dashboard) Annual() schema.SeriesResult {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.annual
}

// Monthly returns the current monthly series. After a failed fetch its Year
// may differ from SelectedYear.
func (d *Dashboard) Monthly() schema.SeriesResult {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.monthly
}

// Result returns a snapshot of the full dashboard state.
func (d *Dashboard) Result() schema.DashboardResult {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return schema.DashboardResult{
		SelectedYear: d.selectedYear,
		YearOptions:  schema.YearsOf(d.annual.Points),
		Annual:       d.annual,
		Monthly:      d.monthly,
	}
}
