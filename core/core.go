// Package core has core logic for fetching, densifying and rendering borrow counts.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/internal/countsapi"
	"github.com/huangsam/libstats/internal/outwriter"
	"github.com/huangsam/libstats/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// newClient builds the counts client for a config. Tests swap it for a mock.
var newClient = func(cfg *contract.Config) contract.CountsClient {
	return countsapi.NewClient(cfg.BaseURL, cfg.Timeout)
}

// stdout is where Execute functions render their results.
var stdout io.Writer = os.Stdout

// ExecuteAnnual fetches the annual series and prints it.
// It serves as the main entry point for the 'annual' command.
func ExecuteAnnual(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetAnnualResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteSeriesResult(stdout, result, cfg, time.Since(start))
}

// ExecuteMonthly fetches the monthly series for cfg.Year and prints it.
// It serves as the main entry point for the 'monthly' command.
func ExecuteMonthly(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetMonthlyResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteSeriesResult(stdout, result, cfg, time.Since(start))
}

// ExecuteDashboard fetches both series and prints them together.
// It serves as the main entry point for the 'dashboard' command.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetDashboardResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteDashboardResult(stdout, result, cfg, time.Since(start))
}

// GetAnnualResult fetches the annual series. A failed fetch yields the cached
// or zero-filled series rather than an error.
func GetAnnualResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SeriesResult, error) {
	d, err := newDashboard(cfg, mgr)
	if err != nil {
		return schema.SeriesResult{}, err
	}
	logHeader(ctx, stdout, cfg, schema.AnnualSeries)
	d.RefreshAnnual(ctx)
	return d.Annual(), nil
}

// GetMonthlyResult fetches the monthly series for cfg.Year.
func GetMonthlyResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SeriesResult, error) {
	d, err := newDashboard(cfg, mgr)
	if err != nil {
		return schema.SeriesResult{}, err
	}
	logHeader(ctx, stdout, cfg, schema.MonthlySeries)
	d.RefreshMonthly(ctx)
	return d.Monthly(), nil
}

// GetDashboardResult fetches both series concurrently.
func GetDashboardResult(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.DashboardResult, error) {
	d, err := newDashboard(cfg, mgr)
	if err != nil {
		return schema.DashboardResult{}, err
	}
	logHeader(ctx, stdout, cfg, "")
	d.Refresh(ctx)
	return d.Result(), nil
}

func newDashboard(cfg *contract.Config, mgr contract.CacheManager) (*Dashboard, error) {
	if err := contract.ValidateYear(cfg.Year); err != nil {
		return nil, err
	}
	return NewDashboard(newClient(cfg), mgr, cfg.Year, cfg.CacheTTL), nil
}

// logHeader prints a concise header before text output.
// An empty kind means the whole dashboard.
func logHeader(ctx context.Context, w io.Writer, cfg *contract.Config, kind schema.SeriesKind) {
	if shouldSuppressHeader(ctx) || cfg.Output != schema.TextOut || cfg.OutputFile != "" {
		return
	}
	sourceIcon, yearIcon := "", ""
	if cfg.UseEmojis {
		sourceIcon, yearIcon = "🔎 ", "📅 "
	}

	what := "dashboard"
	if kind != "" {
		what = string(kind)
	}
	_, _ = fmt.Fprintf(w, "%sSource: %s (%s)\n", sourceIcon, cfg.BaseURL, what)

	switch kind {
	case schema.AnnualSeries:
		_, _ = fmt.Fprintf(w, "%sYears: %d → %d\n", yearIcon, schema.AnnualDomain.Start, schema.AnnualDomain.End)
	default:
		_, _ = fmt.Fprintf(w, "%sYear: %d\n", yearIcon, cfg.Year)
	}
}
