package cmd

import (
	"github.com/salecast/salecast/core"
	"github.com/salecast/salecast/internal/contract"
	"github.com/spf13/cobra"
)

// sampleCmd writes a synthetic history for demos and smoke tests.
var sampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Write a synthetic four-year sales history as CSV.",
	Long: `Generate a deterministic synthetic daily sales history and write it as CSV.

The series spans four calendar years and combines a base level, a gentle
upward trend, weekly and yearly seasonality, holiday spikes, and seeded
noise. The same --seed always produces the same file.

Use it to:
- Try salecast without real data
- Produce reproducible fixtures for demos and tests

Examples:
  # Write the default sales_data.csv
  salecast sample

  # Pick a path and a different random draw
  salecast sample demo.csv --seed 7`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		path := "sales_data.csv"
		if len(args) == 1 {
			path = args[0]
		}
		if err := core.ExecuteSample(cfg, path); err != nil {
			contract.LogFatal("Cannot write sample data", err)
		}
	},
}
