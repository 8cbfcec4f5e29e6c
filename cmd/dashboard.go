package cmd

import (
	"github.com/huangsam/libstats/core"
	"github.com/huangsam/libstats/internal/contract"
	"github.com/spf13/cobra"
)

// dashboardCmd shows both series together.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the annual and monthly borrowing charts together.",
	Long: `Fetch the annual series and the monthly series of the selected year at the same
time and render them together, like the dashboard page.

A failure in one fetch does not affect the other. Use --output html to write a
page with a bar chart for the years and a line chart for the months.

Examples:
  # Show both tables
  libstats dashboard --year 2023

  # Write the chart page
  libstats dashboard --output html --output-file dashboard.html`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot show dashboard", err)
		}
	},
}
