package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/internal/parquet"
)

// ErrNoHistory is returned when there is nothing to export.
var ErrNoHistory = errors.New("no fetch history found to export")

// ExecuteHistoryExport exports the fetch history of store to a Parquet file.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("fetch history is not enabled. Set --history-backend to record fetches")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalFetches == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total fetches: %d\n", status.TotalFetches)

	records, err := store.GetAllFetches()
	if err != nil {
		return fmt.Errorf("failed to retrieve fetch history: %w", err)
	}

	rows := parquet.ConvertFetchRecords(records)
	if err := parquet.WriteFetchRunsFile(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write fetch history: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d fetch records to: %s\n", len(rows), outputFile)

	return nil
}
