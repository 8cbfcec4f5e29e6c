// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	w io.Writer
}

// NewOutWriter creates a new instance of the output writer bound to w.
func NewOutWriter(w io.Writer) *OutWriter {
	return &OutWriter{w: w}
}

// WriteSeries prints a single series using the configured output format.
func (ow *OutWriter) WriteSeries(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	return WriteSeriesResult(ow.w, result, cfg, duration)
}

// WriteDashboard prints both series and the year selector using the configured output format.
func (ow *OutWriter) WriteDashboard(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	return WriteDashboardResult(ow.w, result, cfg, duration)
}

// WriteSeriesResult dispatches a series to the writer for cfg.Output.
func WriteSeriesResult(w io.Writer, result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeSeriesCSV(out, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeSeriesParquet(out, result)
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeSeriesHTML(out, result)
		}, "Wrote HTML chart")
	case schema.TextOut, "":
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeSeriesTable(out, result, cfg, duration)
		}, "Wrote table")
	default:
		return fmt.Errorf("unsupported output mode: %s", cfg.Output)
	}
}

// WriteDashboardResult dispatches a dashboard to the writer for cfg.Output.
func WriteDashboardResult(w io.Writer, result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeSeriesCSV(out, result.Annual, result.Monthly)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeSeriesParquet(out, result.Annual, result.Monthly)
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeDashboardHTML(out, result)
		}, "Wrote HTML dashboard")
	case schema.TextOut, "":
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeDashboardTable(out, result, cfg, duration)
		}, "Wrote tables")
	default:
		return fmt.Errorf("unsupported output mode: %s", cfg.Output)
	}
}
