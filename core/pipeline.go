package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/internal/forecast"
	"github.com/salecast/salecast/schema"
)

// RunPipeline fits every configured model on the training split, evaluates
// on the held-out trailing window, selects the best by the configured metric
// and refits it on the full history to produce the forecast.
func RunPipeline(ctx context.Context, cfg *contract.Config, series *schema.Series, table *schema.FeatureTable) (*schema.PipelineResult, error) {
	n := series.Len()
	if n <= cfg.TestDays {
		return nil, &contract.PipelineError{
			Stage: "fit",
			Cause: fmt.Errorf("need more than %d observations for a %d-day test window, got %d", cfg.TestDays, cfg.TestDays, n),
		}
	}

	// Time-ordered split, no shuffling
	split := n - cfg.TestDays
	trainData := &contract.TrainingData{
		Series:   series.Slice(0, split),
		Features: sliceTable(table, 0, split),
	}
	testSeries := series.Slice(split, n)

	bar := fitProgressBar(cfg, len(cfg.Models))
	results := make([]schema.ModelResult, 0, len(cfg.Models))
	for _, kind := range cfg.Models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, fitAndEvaluate(kind, cfg, trainData, testSeries))
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	best, ok := selectBest(results, cfg.SelectMetric)
	if !ok {
		return nil, &contract.PipelineError{Stage: "fit", Cause: errors.New("all models failed")}
	}

	// Refit the winner on the full history for the production forecast
	model, err := forecast.New(best, cfg)
	if err != nil {
		return nil, &contract.PipelineError{Stage: "forecast", Cause: err}
	}
	fullData := &contract.TrainingData{Series: series, Features: table}
	if err := model.Fit(fullData); err != nil {
		return nil, &contract.PipelineError{Stage: "forecast", Cause: err}
	}
	points, err := model.Predict(cfg.Horizon)
	if err != nil {
		return nil, &contract.PipelineError{Stage: "forecast", Cause: err}
	}

	return &schema.PipelineResult{
		Results:    results,
		Best:       best,
		Forecast:   points,
		Combined:   AssembleCombined(series, points),
		TestDates:  slices.Clone(testSeries.Dates),
		TestActual: slices.Clone(testSeries.Values),
		Horizon:    cfg.Horizon,
		TrainRows:  split,
		TestRows:   cfg.TestDays,
	}, nil
}

// fitAndEvaluate fits one model on the training split and scores it on the
// held-out window. A model failure is recorded, never fatal here.
func fitAndEvaluate(kind schema.ModelKind, cfg *contract.Config, trainData *contract.TrainingData, testSeries *schema.Series) schema.ModelResult {
	start := time.Now()
	result := schema.ModelResult{Model: kind}

	model, err := forecast.New(kind, cfg)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	if err := model.Fit(trainData); err != nil {
		contract.LogWarn(fmt.Sprintf("fitting %s", kind), err)
		result.Err = err.Error()
		result.FitDuration = time.Since(start)
		return result
	}

	points, err := model.Predict(testSeries.Len())
	if err != nil {
		contract.LogWarn(fmt.Sprintf("evaluating %s", kind), err)
		result.Err = err.Error()
		result.FitDuration = time.Since(start)
		return result
	}

	predicted := make([]float64, len(points))
	for i, p := range points {
		predicted[i] = p.Value
	}

	result.Metrics = forecast.Evaluate(testSeries.Values, predicted)
	result.TestPredictions = predicted
	result.FitDuration = time.Since(start)
	return result
}

// selectBest picks the winning model by the configured metric.
// R2 selects the maximum; the error metrics select the minimum.
// The boolean is false when every model failed.
func selectBest(results []schema.ModelResult, metric schema.SelectMetric) (schema.ModelKind, bool) {
	var best schema.ModelKind
	found := false
	var bestValue float64

	for _, r := range results {
		if r.Failed() {
			continue
		}
		value := r.Metrics.MetricFor(metric)
		better := value < bestValue
		if metric == schema.SelectR2 {
			better = value > bestValue
		}
		if !found || better {
			best, bestValue, found = r.Model, value, true
		}
	}
	return best, found
}

// sliceTable returns a view of the first rows of the table covering [i, j).
func sliceTable(table *schema.FeatureTable, i, j int) *schema.FeatureTable {
	return &schema.FeatureTable{Columns: table.Columns, Rows: table.Rows[i:j]}
}

// fitProgressBar returns a stderr progress bar, or a silent one in quiet mode.
func fitProgressBar(cfg *contract.Config, steps int) *progressbar.ProgressBar {
	if cfg.Quiet {
		return progressbar.DefaultSilent(int64(steps))
	}
	return progressbar.Default(int64(steps), "fitting models")
}
