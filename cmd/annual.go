package cmd

import (
	"github.com/huangsam/libstats/core"
	"github.com/huangsam/libstats/internal/contract"
	"github.com/spf13/cobra"
)

// annualCmd shows the borrow counts per year.
var annualCmd = &cobra.Command{
	Use:   "annual",
	Short: "Show the number of books borrowed per year.",
	Long: `Fetch the annual borrow counts and show one row per year from 2020 to 2025.

Years the service does not report are shown with a count of zero, and years
outside the range are ignored. If the service cannot be reached, the last
cached series is shown instead.

Examples:
  # Show annual counts as a table
  libstats annual

  # Export the series to CSV
  libstats annual --output csv --output-file annual.csv

  # Render a bar chart
  libstats annual --output html --output-file annual.html`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnnual(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot show annual counts", err)
		}
	},
}
