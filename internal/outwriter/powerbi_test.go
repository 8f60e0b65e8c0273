package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

func pipelineFixture() *schema.PipelineResult {
	return &schema.PipelineResult{
		Results: []schema.ModelResult{
			{
				Model:           schema.DecomposeModel,
				Metrics:         schema.EvalMetrics{MAE: 12, RMSE: 15, MAPE: 0.08, R2: 0.91},
				TestPredictions: []float64{498.2, 505.7},
			},
			{Model: schema.ARIMAModel, Err: "not enough observations"},
			{
				Model:           schema.GBTModel,
				Metrics:         schema.EvalMetrics{MAE: 10, RMSE: 13, MAPE: 0.06, R2: 0.94},
				TestPredictions: []float64{501.1, 508.3},
			},
		},
		Best: schema.GBTModel,
		Forecast: []schema.ForecastPoint{
			{Date: day("2024-01-01"), Value: 650, Lower: 600, Upper: 700},
			{Date: day("2024-01-02"), Value: 655, Lower: 605, Upper: 705},
		},
		Combined: []schema.CombinedRow{
			{Date: day("2023-12-31"), Sales: 640, DataType: schema.HistoricalData, ForecastLower: schema.Null(), ForecastUpper: schema.Null(), Year: 2023, Month: 12, Quarter: 4, DayOfWeek: 6},
			{Date: day("2024-01-01"), Sales: 650, DataType: schema.ForecastData, ForecastLower: 600, ForecastUpper: 700, Year: 2024, Month: 1, Quarter: 1, DayOfWeek: 0},
		},
		TestDates:  []time.Time{day("2023-12-30"), day("2023-12-31")},
		TestActual: []float64{500.0, 510.0},
		Horizon:    2,
		TrainRows:  100,
		TestRows:   2,
	}
}

func TestExportArtifacts(t *testing.T) {
	cfg := &contract.Config{
		OutputDir:    t.TempDir(),
		Precision:    2,
		SelectMetric: schema.SelectMAPE,
	}
	result := pipelineFixture()
	table := featureFixture()
	report := BuildSummaryReport(
		&schema.Series{
			Dates:  []time.Time{day("2023-01-02"), day("2023-01-03")},
			Values: []float64{500, 510},
		},
		table,
		schema.QualityReport{RowsRead: 2, RowsKept: 2},
		result,
	)

	require.NoError(t, ExportArtifacts(result, table, report, cfg))

	for _, name := range []string{
		PowerBIDataFile,
		TestPredictionsFile,
		FeaturesFile,
		ModelComparisonFile,
		SummaryReportFile,
	} {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	// Comparison JSON decodes and names the best model
	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, ModelComparisonFile))
	require.NoError(t, err)
	var comparison forecastRenderModel
	require.NoError(t, json.Unmarshal(raw, &comparison))
	assert.Equal(t, schema.GBTModel, comparison.BestModel)
	assert.Len(t, comparison.Models, 3)

	// Summary JSON decodes and carries the span
	raw, err = os.ReadFile(filepath.Join(cfg.OutputDir, SummaryReportFile))
	require.NoError(t, err)
	var summary schema.SummaryReport
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, "2023-01-02", summary.FirstDate)
	assert.Equal(t, schema.GBTModel, summary.BestModel)
	assert.Equal(t, 2, summary.ForecastDays)
	assert.InDelta(t, 1305.0, summary.ForecastTotal, 1e-9)
}

func TestExportArtifactsTestPredictionColumns(t *testing.T) {
	cfg := &contract.Config{
		OutputDir:    t.TempDir(),
		Precision:    2,
		SelectMetric: schema.SelectMAPE,
	}
	result := pipelineFixture()
	report := &schema.SummaryReport{}

	require.NoError(t, ExportArtifacts(result, featureFixture(), report, cfg))

	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, TestPredictionsFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	// Failed arima gets no column
	assert.Equal(t, "date,actual_sales,decompose_pred,gbt_pred", lines[0])
	assert.Equal(t, "2023-12-30,500.00,498.20,501.10", lines[1])
}

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"rising", []float64{100, 100, 150, 150}, "up"},
		{"falling", []float64{150, 150, 100, 100}, "down"},
		{"steady", []float64{100, 100, 100, 101}, "flat"},
		{"too short", []float64{100}, "flat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := &schema.Series{Values: tt.values, Dates: make([]time.Time, len(tt.values))}
			assert.Equal(t, tt.want, trendDirection(series))
		})
	}
}

func TestPeakPeriods(t *testing.T) {
	table := &schema.FeatureTable{
		Rows: []schema.FeatureRow{
			{Month: 1, DayOfWeek: 0, Sales: 100},
			{Month: 1, DayOfWeek: 1, Sales: 120},
			{Month: 12, DayOfWeek: 5, Sales: 300},
			{Month: 12, DayOfWeek: 5, Sales: 320},
		},
	}
	month, dow := peakPeriods(table)
	assert.Equal(t, 12, month)
	assert.Equal(t, 5, dow)
}
