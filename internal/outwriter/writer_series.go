package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/internal/parquet"
	"github.com/huangsam/libstats/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// seriesCSVHeader is shared by series and dashboard CSV output.
var seriesCSVHeader = []string{"kind", "year", "key", "label", "count", "level"}

// writeSeriesCSV writes one row per point of every given series.
func writeSeriesCSV(w io.Writer, results ...schema.SeriesResult) error {
	return writeCSVWithHeader(w, seriesCSVHeader, func(csvWriter *csv.Writer) error {
		for _, result := range results {
			peak := result.Points.Peak().Count
			year := ""
			if result.Kind == schema.MonthlySeries {
				year = strconv.Itoa(result.Year)
			}
			for _, p := range result.Points {
				row := []string{
					string(result.Kind),
					year,
					strconv.Itoa(p.Key),
					p.Label(result.Kind),
					strconv.Itoa(p.Count),
					contract.GetPlainLabel(p.Count, peak),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}

// writeSeriesParquet writes all points of every given series into one Parquet file.
func writeSeriesParquet(w io.Writer, results ...schema.SeriesResult) error {
	var rows []parquet.SeriesPoint
	for _, result := range results {
		rows = append(rows, parquet.ConvertSeries(result)...)
	}
	return parquet.WriteSeriesPoints(w, rows)
}

// seriesTitle names a series for table captions.
func seriesTitle(result schema.SeriesResult) string {
	if result.Kind == schema.MonthlySeries {
		return fmt.Sprintf("%s by month (%d)", schema.SeriesLabel, result.Year)
	}
	return fmt.Sprintf("%s by year (%d-%d)", schema.SeriesLabel, result.Domain.Start, result.Domain.End)
}

// renderBar draws a proportional bar for count relative to peak.
func renderBar(count, peak, width int, useColors bool) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := max(1, count*width/peak)
	bar := strings.Repeat("█", n)
	if useColors {
		return contract.BarColor.Sprint(bar)
	}
	return bar
}

// writeSeriesTableBody renders the table and footer for a single series.
func writeSeriesTableBody(w io.Writer, result schema.SeriesResult, cfg *contract.Config) error {
	peak := result.Points.Peak()
	total := result.Points.Total()
	barWidth := GetMaxBarWidth(cfg)

	_, _ = fmt.Fprintln(w, seriesTitle(result))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Period", "Count", "Share", "Level", "Bar"})
	table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft, tw.AlignLeft}
	})

	data := make([][]string, 0, len(result.Points))
	for _, p := range result.Points {
		share := 0.0
		if total > 0 {
			share = float64(p.Count) / float64(total) * 100
		}
		level := contract.GetPlainLabel(p.Count, peak.Count)
		if cfg.UseColors {
			level = contract.GetColorLabel(p.Count, peak.Count)
		}
		data = append(data, []string{
			p.Label(result.Kind),
			strconv.Itoa(p.Count),
			fmt.Sprintf("%.1f%%", share),
			level,
			renderBar(p.Count, peak.Count, barWidth, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if total > 0 {
		_, _ = fmt.Fprintf(w, "Total: %d, peak: %s (%d)\n", total, peak.Label(result.Kind), peak.Count)
	} else {
		_, _ = fmt.Fprintln(w, "Total: 0, no borrowings recorded")
	}
	if result.Cached {
		_, _ = fmt.Fprintf(w, "Served from cache (fetched %s)\n", result.FetchedAt.Format(contract.DateTimeFormat))
	}
	return nil
}

// writeSeriesTable renders one series followed by the timing line.
func writeSeriesTable(w io.Writer, result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	if err := writeSeriesTableBody(w, result, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Fetched in %v\n", duration.Round(time.Millisecond))
	return nil
}

// writeDashboardTable renders the year selector and both series.
func writeDashboardTable(w io.Writer, result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	_, _ = fmt.Fprintf(w, "%s\n", schema.ChartTitle)
	_, _ = fmt.Fprintf(w, "Year: %s\n\n", formatYearOptions(result.YearOptions, result.SelectedYear))

	if err := writeSeriesTableBody(w, result.Annual, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	if err := writeSeriesTableBody(w, result.Monthly, cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Fetched in %v\n", duration.Round(time.Millisecond))
	return nil
}

// formatYearOptions lists the selectable years with the selected one bracketed.
func formatYearOptions(years []int, selected int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		if y == selected {
			parts[i] = fmt.Sprintf("[%d]", y)
		} else {
			parts[i] = strconv.Itoa(y)
		}
	}
	return strings.Join(parts, " ")
}
