// Package core has the orchestration logic for loading, feature
// engineering and forecasting.
package core

import (
	"context"
	"time"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/internal/features"
	"github.com/salecast/salecast/internal/loader"
	"github.com/salecast/salecast/internal/outwriter"
	"github.com/salecast/salecast/internal/runstore"
	"github.com/salecast/salecast/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteRun runs the full pipeline for one input file and writes all artifacts.
// It serves as the main entry point for the 'run' command.
func ExecuteRun(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	loaded, table, err := loadAndEngineer(cfg)
	if err != nil {
		return err
	}

	runID := beginRunTracking(start, cfg)

	result, err := RunPipeline(ctx, cfg, loaded.Series, table)
	if err != nil {
		return err
	}

	recordRunScores(runID, result)

	report := outwriter.BuildSummaryReport(loaded.Series, table, loaded.Quality, result)
	writer := outwriter.NewOutWriter()
	if err := writer.WriteArtifacts(result, table, report, cfg); err != nil {
		return &contract.PipelineError{Stage: "export", Cause: err}
	}

	endRunTracking(runID, loaded.Series.Len(), table.Len(), len(result.Forecast), result.Best)

	return writer.WriteForecast(result, cfg, time.Since(start))
}

// ExecuteFeatures runs load + feature engineering only and prints the table.
// It serves as the main entry point for the 'features' command.
func ExecuteFeatures(_ context.Context, cfg *contract.Config) error {
	start := time.Now()

	_, table, err := loadAndEngineer(cfg)
	if err != nil {
		return err
	}

	return outwriter.NewOutWriter().WriteFeatures(table, cfg, time.Since(start))
}

// ExecuteModels displays the formal definitions of all models and metrics.
// This is a static display that does not require input data.
func ExecuteModels(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteModels(cfg)
}

// ExecuteSample synthesizes the sample retail dataset at path.
func ExecuteSample(cfg *contract.Config, path string) error {
	rows, err := loader.WriteSampleCSV(path, cfg.Seed)
	if err != nil {
		return err
	}
	contract.LogProgress(cfg.Quiet, "Wrote %d sample rows to %s", rows, path)
	return nil
}

// GetForecastResults runs the full pipeline without writing any artifacts.
// It backs the MCP tools, which return payloads instead of files.
func GetForecastResults(ctx context.Context, cfg *contract.Config) (*schema.PipelineResult, *schema.SummaryReport, error) {
	loaded, table, err := loadAndEngineer(cfg)
	if err != nil {
		return nil, nil, err
	}

	result, err := RunPipeline(ctx, cfg, loaded.Series, table)
	if err != nil {
		return nil, nil, err
	}

	report := outwriter.BuildSummaryReport(loaded.Series, table, loaded.Quality, result)
	return result, report, nil
}

// GetFeatureTable runs load + feature engineering and returns the table.
func GetFeatureTable(cfg *contract.Config) (*schema.FeatureTable, error) {
	_, table, err := loadAndEngineer(cfg)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// loadAndEngineer is the shared front half of the run and features commands.
func loadAndEngineer(cfg *contract.Config) (*loader.Result, *schema.FeatureTable, error) {
	loaded, err := loader.Load(cfg.InputPath)
	if err != nil {
		return nil, nil, err
	}
	contract.LogProgress(cfg.Quiet, "Loaded %d days from %s (%d duplicates, %d gaps)",
		loaded.Series.Len(), cfg.InputPath, loaded.Quality.DuplicateDates, loaded.Quality.CalendarGaps)

	table := features.Engineer(loaded.Series, cfg)
	contract.LogProgress(cfg.Quiet, "Engineered %d feature columns", len(table.Columns))

	return loaded, table, nil
}

// beginRunTracking opens a run record in the history store.
// Store failures degrade to warnings; forecasting never blocks on the store.
func beginRunTracking(start time.Time, cfg *contract.Config) int64 {
	store := runstore.Manager.GetRunStore()
	if store == nil {
		return 0
	}
	runID, err := store.BeginRun(start, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("recording run start", err)
		return 0
	}
	return runID
}

// recordRunScores persists per-model metrics for a tracked run.
func recordRunScores(runID int64, result *schema.PipelineResult) {
	if runID == 0 {
		return
	}
	store := runstore.Manager.GetRunStore()
	if store == nil {
		return
	}
	for _, r := range result.Results {
		record := schema.ModelScoreRecord{
			RunID:         runID,
			Model:         string(r.Model),
			MAE:           r.Metrics.MAE,
			RMSE:          r.Metrics.RMSE,
			MAPE:          r.Metrics.MAPE,
			R2:            r.Metrics.R2,
			Selected:      r.Model == result.Best && !r.Failed(),
			FitDurationMs: int32(r.FitDuration.Milliseconds()),
		}
		if r.Failed() {
			errMsg := r.Err
			record.FitError = &errMsg
		}
		if err := store.RecordModelScore(runID, record); err != nil {
			contract.LogWarn("recording model score", err)
		}
	}
}

// endRunTracking closes out a tracked run.
func endRunTracking(runID int64, inputRows, featureRows, forecastRows int, best schema.ModelKind) {
	if runID == 0 {
		return
	}
	store := runstore.Manager.GetRunStore()
	if store == nil {
		return
	}
	if err := store.EndRun(runID, time.Now(), inputRows, featureRows, forecastRows, string(best)); err != nil {
		contract.LogWarn("recording run end", err)
	}
}
