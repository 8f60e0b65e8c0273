package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salecast/salecast/internal/loader"
	"github.com/salecast/salecast/internal/outwriter"
	"github.com/salecast/salecast/schema"
)

func sampleInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	_, err := loader.WriteSampleCSV(path, 42)
	require.NoError(t, err)
	return path
}

func TestExecuteSample(t *testing.T) {
	cfg := testConfig()
	path := filepath.Join(t.TempDir(), "sample.csv")

	require.NoError(t, ExecuteSample(cfg, path))

	loaded, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1461, loaded.Series.Len())
}

func TestExecuteFeatures(t *testing.T) {
	cfg := testConfig()
	cfg.InputPath = sampleInput(t)
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "features.csv")

	require.NoError(t, ExecuteFeatures(context.Background(), cfg))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	// Header plus one row per day
	assert.Len(t, lines, 1462)
	assert.Contains(t, lines[0], "rolling_mean_7")
}

func TestExecuteFeaturesMissingInput(t *testing.T) {
	cfg := testConfig()
	cfg.InputPath = filepath.Join(t.TempDir(), "absent.csv")
	assert.Error(t, ExecuteFeatures(context.Background(), cfg))
}

func TestExecuteRunWritesArtifacts(t *testing.T) {
	cfg := testConfig()
	cfg.InputPath = sampleInput(t)
	cfg.OutputDir = t.TempDir()
	cfg.OutputFile = filepath.Join(t.TempDir(), "table.txt")
	cfg.TestDays = 73
	cfg.Horizon = 30

	require.NoError(t, ExecuteRun(context.Background(), cfg))

	for _, name := range []string{
		outwriter.PowerBIDataFile,
		outwriter.TestPredictionsFile,
		outwriter.FeaturesFile,
		outwriter.ModelComparisonFile,
		outwriter.SummaryReportFile,
	} {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	// Combined table has one forecast row per horizon day
	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, outwriter.PowerBIDataFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 1+1461+30)
}

func TestExecuteModels(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "models.txt")

	require.NoError(t, ExecuteModels(context.Background(), cfg))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "GBT")
}

func TestAssembleCombined(t *testing.T) {
	series := syntheticSeries(10)
	forecast := []schema.ForecastPoint{
		{Date: series.Last().AddDate(0, 0, 1), Value: 500, Lower: 450, Upper: 550},
		{Date: series.Last().AddDate(0, 0, 2), Value: 505, Lower: 455, Upper: 555},
	}

	rows := AssembleCombined(series, forecast)
	require.Len(t, rows, 12)

	for i := range 10 {
		assert.Equal(t, schema.HistoricalData, rows[i].DataType)
		assert.True(t, schema.IsNull(rows[i].ForecastLower))
		assert.True(t, schema.IsNull(rows[i].ForecastUpper))
	}
	for i := 10; i < 12; i++ {
		assert.Equal(t, schema.ForecastData, rows[i].DataType)
		assert.False(t, schema.IsNull(rows[i].ForecastLower))
	}

	// Forecast rows continue the calendar without a gap
	assert.Equal(t, rows[9].Date.AddDate(0, 0, 1), rows[10].Date)
	assert.Equal(t, rows[10].Date.AddDate(0, 0, 1), rows[11].Date)

	// Calendar columns derive from the row date
	first := rows[0]
	assert.Equal(t, first.Date.Year(), first.Year)
	assert.Equal(t, int(first.Date.Month()), first.Month)
	assert.Equal(t, schema.QuarterOf(first.Month), first.Quarter)
	assert.Equal(t, schema.DayOfWeekMonday(first.Date), first.DayOfWeek)
}
