package cmd

import (
	"github.com/huangsam/libstats/core"
	"github.com/huangsam/libstats/internal/contract"
	"github.com/spf13/cobra"
)

// monthlyCmd shows the borrow counts per month of a year.
var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show the number of books borrowed per month of a year.",
	Long: `Fetch the monthly borrow counts of the selected year and show all 12 months.

Months without borrowings are shown with a count of zero. The year defaults to
the current year, limited to 2020-2025.

Examples:
  # Show the current year
  libstats monthly

  # Show a specific year as JSON
  libstats monthly --year 2022 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonthly(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot show monthly counts", err)
		}
	},
}
