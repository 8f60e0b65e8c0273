package cmd

import (
	"github.com/salecast/salecast/core"
	"github.com/salecast/salecast/internal/contract"
	"github.com/spf13/cobra"
)

// modelsCmd documents the available models and metrics.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Describe the forecasting models and selection metrics.",
	Long: `Show the available forecasting models with their effective parameters,
plus the metrics used to rank them.

Models:
  decompose - linear trend with Fourier seasonality and holiday effects
  arima     - classical ARIMA on the differenced series
  gbt       - gradient-boosted trees over the engineered features

Reflects the current configuration, so flag and config-file overrides
show up in the listed parameters.

Examples:
  salecast models
  salecast models --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModels(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot describe models", err)
		}
	},
}
