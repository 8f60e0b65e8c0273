package core

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/internal/features"
	"github.com/salecast/salecast/schema"
)

// syntheticSeries builds n gap-free daily observations with a mild trend
// and weekly seasonality.
func syntheticSeries(n int) *schema.Series {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	series := &schema.Series{
		Dates:  make([]time.Time, n),
		Values: make([]float64, n),
	}
	for i := range n {
		series.Dates[i] = start.AddDate(0, 0, i)
		series.Values[i] = 500 + 0.2*float64(i) + 30*math.Sin(2*math.Pi*float64(i)/7)
	}
	return series
}

func testConfig() *contract.Config {
	return &contract.Config{
		Horizon:      30,
		TestDays:     30,
		Windows:      []int{7},
		Lags:         []int{1, 7},
		TrendWindows: []int{7},
		Models:       []schema.ModelKind{schema.DecomposeModel},
		SelectMetric: schema.SelectMAPE,
		ARIMA:        contract.ARIMAOrder{P: 5, D: 1, Q: 2},
		GBT:          contract.GBTParams{Trees: 10, MaxDepth: 3, LearningRate: 0.1, Subsample: 0.8},
		Seed:         42,
		Holidays:     schema.DefaultHolidays,
		Quiet:        true,
		Precision:    2,
		Output:       schema.TextOut,
	}
}

func TestRunPipelineDecompose(t *testing.T) {
	cfg := testConfig()
	series := syntheticSeries(400)
	table := features.Engineer(series, cfg)

	result, err := RunPipeline(context.Background(), cfg, series, table)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].Failed())
	assert.Equal(t, schema.DecomposeModel, result.Best)
	assert.Equal(t, 370, result.TrainRows)
	assert.Equal(t, 30, result.TestRows)
	require.Len(t, result.TestDates, 30)
	require.Len(t, result.Results[0].TestPredictions, 30)

	// Forecast is contiguous and strictly after the last historical date
	require.Len(t, result.Forecast, 30)
	last := series.Last()
	for i, p := range result.Forecast {
		assert.Equal(t, last.AddDate(0, 0, i+1), p.Date)
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.LessOrEqual(t, p.Lower, p.Value)
		assert.GreaterOrEqual(t, p.Upper, p.Value)
	}

	require.Len(t, result.Combined, 430)
}

func TestRunPipelineSelectsBestAmongModels(t *testing.T) {
	cfg := testConfig()
	cfg.Models = []schema.ModelKind{schema.DecomposeModel, schema.GBTModel}
	series := syntheticSeries(400)
	table := features.Engineer(series, cfg)

	result, err := RunPipeline(context.Background(), cfg, series, table)
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	for _, r := range result.Results {
		assert.False(t, r.Failed(), string(r.Model))
	}
	assert.Contains(t, cfg.Models, result.Best)
}

func TestRunPipelineRecordsModelFailure(t *testing.T) {
	cfg := testConfig()
	cfg.TestDays = 30
	// 40 observations leave only 10 training rows, too few for any model
	series := syntheticSeries(40)
	table := features.Engineer(series, cfg)

	_, err := RunPipeline(context.Background(), cfg, series, table)
	var perr *contract.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "fit", perr.Stage)
}

func TestRunPipelineTooFewObservations(t *testing.T) {
	cfg := testConfig()
	series := syntheticSeries(20)
	table := features.Engineer(series, cfg)

	_, err := RunPipeline(context.Background(), cfg, series, table)
	var perr *contract.PipelineError
	require.ErrorAs(t, err, &perr)
}

func TestRunPipelineContextCancelled(t *testing.T) {
	cfg := testConfig()
	series := syntheticSeries(400)
	table := features.Engineer(series, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunPipeline(ctx, cfg, series, table)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelectBest(t *testing.T) {
	results := []schema.ModelResult{
		{Model: schema.DecomposeModel, Metrics: schema.EvalMetrics{MAE: 12, MAPE: 0.08, R2: 0.91}},
		{Model: schema.ARIMAModel, Err: "boom"},
		{Model: schema.GBTModel, Metrics: schema.EvalMetrics{MAE: 14, MAPE: 0.06, R2: 0.94}},
	}

	tests := []struct {
		name   string
		metric schema.SelectMetric
		want   schema.ModelKind
	}{
		{"lowest mape wins", schema.SelectMAPE, schema.GBTModel},
		{"lowest mae wins", schema.SelectMAE, schema.DecomposeModel},
		{"highest r2 wins", schema.SelectR2, schema.GBTModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := selectBest(results, tt.metric)
			require.True(t, ok)
			assert.Equal(t, tt.want, best)
		})
	}
}

func TestSelectBestAllFailed(t *testing.T) {
	results := []schema.ModelResult{
		{Model: schema.DecomposeModel, Err: "boom"},
		{Model: schema.ARIMAModel, Err: "boom"},
	}
	_, ok := selectBest(results, schema.SelectMAPE)
	assert.False(t, ok)
}

func TestSliceTable(t *testing.T) {
	cfg := testConfig()
	series := syntheticSeries(50)
	table := features.Engineer(series, cfg)

	sliced := sliceTable(table, 0, 20)
	assert.Equal(t, table.Columns, sliced.Columns)
	assert.Equal(t, 20, sliced.Len())
	assert.Equal(t, table.Rows[0].Date, sliced.Rows[0].Date)
}
