package cmd

import (
	"github.com/salecast/salecast/core"
	"github.com/salecast/salecast/internal/contract"
	"github.com/spf13/cobra"
)

// runCmd runs the full forecasting pipeline.
var runCmd = &cobra.Command{
	Use:   "run <data-file>",
	Short: "Run the full forecasting pipeline and export BI artifacts.",
	Long: `Load a daily sales history, engineer features, fit the configured models,
and forecast the next horizon with the best one.

The pipeline:
- Holds out the trailing test window and fits each model on the rest
- Scores every model on MAE, RMSE, MAPE and R2 over the held-out window
- Picks the best model by the selection metric and refits it on full history
- Exports five BI artifacts (Power BI data, test predictions, features,
  model comparison, summary report) to the output directory

A model that fails to fit is reported and ranked last; the run only fails
when every model does.

Examples:
  # Forecast a year ahead with all models
  salecast run sales.csv

  # Quarter-ahead forecast judged by RMSE
  salecast run sales.xlsx --horizon 90 --select-metric rmse

  # Restrict the field and tune the boosted trees
  salecast run sales.parquet --models decompose,gbt --gbt-trees 200 --gbt-depth 4

  # Emit the combined table as CSV instead of the text summary
  salecast run sales.csv --output csv --output-file combined.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRun(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run forecast pipeline", err)
		}
	},
}
