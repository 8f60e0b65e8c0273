package cmd

import (
	"github.com/salecast/salecast/core"
	"github.com/salecast/salecast/internal/contract"
	"github.com/spf13/cobra"
)

// featuresCmd engineers features without fitting any model.
var featuresCmd = &cobra.Command{
	Use:   "features <data-file>",
	Short: "Engineer and inspect the model feature table.",
	Long: `Load a daily sales history and print the engineered feature table.

Features include calendar fields (year, month, day of week, week of year,
quarter and the boundary flags), lagged sales, rolling means and standard
deviations, and rolling trend slopes. Rows too early for a window or lag
hold null values.

Useful for:
- Sanity-checking a history file before a full run
- Feeding the exact model inputs into notebooks or BI tools
- Tuning window and lag choices

Examples:
  # Preview the trailing rows in a terminal table
  salecast features sales.csv

  # Wider rolling context
  salecast features sales.csv --windows 7,30,90 --lags 1,7,28

  # Full table as CSV or Parquet
  salecast features sales.csv --output csv --output-file features.csv
  salecast features sales.csv --output parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFeatures(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot engineer features", err)
		}
	},
}
