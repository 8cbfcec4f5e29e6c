// Package parquet provides data structures and functions for exporting libstats
// series and fetch history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/libstats/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesPoint is one point of a dense series.
type SeriesPoint struct {
	// Kind is either annual or monthly
	Kind string `parquet:"kind,snappy,dict"`

	// Year is the selected year for monthly points (nullable for annual points)
	Year *int32 `parquet:"year,optional,snappy"`

	// Key is the year or month of the point
	Key int32 `parquet:"key,snappy"`

	// Label is the display label, e.g. "Mar" or "2023"
	Label string `parquet:"label,snappy"`

	// Count is the number of books borrowed
	Count int64 `parquet:"count,snappy"`

	// FetchedAt is when the series was retrieved (stored as TIMESTAMP with nanosecond precision)
	FetchedAt time.Time `parquet:"fetched_at,snappy"`

	// Cached marks points served from the series cache
	Cached bool `parquet:"cached"`
}

// FetchRun is one row of the fetch history.
// This struct maps to the libstats_fetch_history database table.
type FetchRun struct {
	FetchID    int64     `parquet:"fetch_id,snappy"`
	Kind       string    `parquet:"series_kind,snappy,dict"`
	Year       *int32    `parquet:"series_year,optional,snappy"`
	StartedAt  time.Time `parquet:"started_at,snappy"`
	DurationMs int64     `parquet:"duration_ms,snappy"`
	Status     string    `parquet:"fetch_status,snappy,dict"`
	Points     int32     `parquet:"points,snappy"`
	Dropped    int32     `parquet:"dropped,snappy"`
	Error      *string   `parquet:"error_message,optional,snappy"`
}

// WriteSeriesPoints writes SeriesPoint rows to w.
func WriteSeriesPoints(w io.Writer, data []SeriesPoint) error {
	return writeRows(w, data)
}

// WriteFetchRuns writes FetchRun rows to w.
func WriteFetchRuns(w io.Writer, data []FetchRun) error {
	return writeRows(w, data)
}

// WriteFetchRunsFile writes FetchRun rows to a new file at outputPath.
func WriteFetchRunsFile(data []FetchRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return writeRows(file, data)
}

// writeRows writes all rows with a schema derived from the struct tags of T.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertSeries converts a series result to SeriesPoint rows.
func ConvertSeries(result schema.SeriesResult) []SeriesPoint {
	var year *int32
	if result.Kind == schema.MonthlySeries {
		y := int32(result.Year)
		year = &y
	}
	rows := make([]SeriesPoint, len(result.Points))
	for i, p := range result.Points {
		rows[i] = SeriesPoint{
			Kind:      string(result.Kind),
			Year:      year,
			Key:       int32(p.Key),
			Label:     p.Label(result.Kind),
			Count:     int64(p.Count),
			FetchedAt: result.FetchedAt,
			Cached:    result.Cached,
		}
	}
	return rows
}

// ConvertFetchRecords converts schema.FetchRecord to FetchRun for Parquet export.
func ConvertFetchRecords(records []schema.FetchRecord) []FetchRun {
	result := make([]FetchRun, len(records))
	for i, record := range records {
		row := FetchRun{
			FetchID:    record.FetchID,
			Kind:       string(record.Kind),
			StartedAt:  record.StartedAt,
			DurationMs: record.DurationMs,
			Status:     string(record.Status),
			Points:     int32(record.Points),
			Dropped:    int32(record.Dropped),
		}
		if record.Kind == schema.MonthlySeries {
			y := int32(record.Year)
			row.Year = &y
		}
		if record.Error != "" {
			msg := record.Error
			row.Error = &msg
		}
		result[i] = row
	}
	return result
}
