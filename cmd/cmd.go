// Package cmd defines the command-line interface for salecast.
package cmd

import (
	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output-dir", "outputs", "Directory for exported BI artifacts")
	rootCmd.PersistentFlags().Int("horizon", contract.DefaultHorizon, "Forecast length in days")
	rootCmd.PersistentFlags().Int("test-days", contract.DefaultTestDays, "Held-out trailing window in days")
	rootCmd.PersistentFlags().String("windows", "", "Comma-separated rolling window sizes in days (e.g. 7,14,30)")
	rootCmd.PersistentFlags().String("lags", "", "Comma-separated lag offsets in days (e.g. 1,7,14)")
	rootCmd.PersistentFlags().String("trend-windows", "", "Comma-separated trend slope windows in days")
	rootCmd.PersistentFlags().String("models", "", "Comma-separated models to fit: decompose, arima, gbt (default all)")
	rootCmd.PersistentFlags().String("select-metric", string(schema.SelectMAPE), "Metric that picks the best model: mape, mae, rmse, r2")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Seed for GBT subsampling and sample synthesis")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run-history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql run history")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runCmd to Viper
	runCmd.Flags().String("arima-order", "", "ARIMA order as p,d,q (default 5,1,2)")
	runCmd.Flags().Int("gbt-trees", 0, "Number of boosted trees (default 100)")
	runCmd.Flags().Int("gbt-depth", 0, "Maximum boosted tree depth (default 6)")
	runCmd.Flags().Float64("gbt-rate", 0, "GBT learning rate (default 0.05)")
	runCmd.Flags().Float64("gbt-subsample", 0, "GBT row subsample fraction (default 0.8)")
	if err := viper.BindPFlags(runCmd.Flags()); err != nil {
		contract.LogFatal("Error binding run flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
