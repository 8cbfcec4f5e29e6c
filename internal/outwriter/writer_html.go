package outwriter

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/libstats/schema"
)

// Chart sizing for the HTML output.
const (
	chartWidth  = "900px"
	chartHeight = "420px"
)

// seriesLabels returns the x-axis labels of a series.
func seriesLabels(result schema.SeriesResult) []string {
	labels := make([]string, len(result.Points))
	for i, p := range result.Points {
		labels[i] = p.Label(result.Kind)
	}
	return labels
}

func chartGlobalOpts(subtitle, xName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    schema.ChartTitle,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:  opts.Bool(true),
			Right: "10",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:         xName,
			NameLocation: "center",
			NameGap:      30,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         schema.SeriesLabel,
			NameLocation: "center",
			NameGap:      50,
		}),
	}
}

// buildAnnualChart draws the annual series as bars.
func buildAnnualChart(result schema.SeriesResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(chartGlobalOpts(
		fmt.Sprintf("Per year, %d-%d", result.Domain.Start, result.Domain.End), "Year")...)

	data := make([]opts.BarData, len(result.Points))
	for i, p := range result.Points {
		data[i] = opts.BarData{Value: p.Count}
	}
	bar.SetXAxis(seriesLabels(result)).AddSeries(schema.SeriesLabel, data)
	return bar
}

// buildMonthlyChart draws the monthly series of the selected year as a line.
func buildMonthlyChart(result schema.SeriesResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(chartGlobalOpts(fmt.Sprintf("Per month, %d", result.Year), "Month")...)

	data := make([]opts.LineData, len(result.Points))
	for i, p := range result.Points {
		data[i] = opts.LineData{Value: p.Count}
	}
	line.SetXAxis(seriesLabels(result)).AddSeries(schema.SeriesLabel, data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func writeSeriesHTML(w io.Writer, result schema.SeriesResult) error {
	page := components.NewPage()
	page.PageTitle = schema.ChartTitle
	if result.Kind == schema.MonthlySeries {
		page.AddCharts(buildMonthlyChart(result))
	} else {
		page.AddCharts(buildAnnualChart(result))
	}
	return page.Render(w)
}

func writeDashboardHTML(w io.Writer, result schema.DashboardResult) error {
	page := components.NewPage()
	page.PageTitle = schema.ChartTitle
	page.AddCharts(buildAnnualChart(result.Annual), buildMonthlyChart(result.Monthly))
	return page.Render(w)
}
