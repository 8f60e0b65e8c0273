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

func outputConfig(t *testing.T, mode schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:       mode,
		OutputFile:   filepath.Join(t.TempDir(), "out"),
		OutputDir:    t.TempDir(),
		Precision:    2,
		Width:        120,
		SelectMetric: schema.SelectMAPE,
		ARIMA:        contract.ARIMAOrder{P: 5, D: 1, Q: 2},
		GBT:          contract.DefaultGBTParams(),
		Seed:         42,
		Holidays:     schema.DefaultHolidays,
	}
}

func TestPrintForecastResultsText(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)
	require.NoError(t, PrintForecastResults(pipelineFixture(), cfg, time.Second))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "gbt")
	assert.Contains(t, content, "failed: not enough observations")
	assert.Contains(t, content, "Best model: gbt")
}

func TestPrintForecastResultsJSON(t *testing.T) {
	cfg := outputConfig(t, schema.JSONOut)
	require.NoError(t, PrintForecastResults(pipelineFixture(), cfg, time.Second))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded forecastRenderModel
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, schema.GBTModel, decoded.BestModel)
}

func TestPrintForecastResultsCSV(t *testing.T) {
	cfg := outputConfig(t, schema.CSVOut)
	require.NoError(t, PrintForecastResults(pipelineFixture(), cfg, time.Second))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "date,sales,data_type"))
}

func TestPrintFeatureResultsCSV(t *testing.T) {
	cfg := outputConfig(t, schema.CSVOut)
	require.NoError(t, PrintFeatureResults(featureFixture(), cfg, time.Second))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "rolling_mean_7")
}

func TestPrintFeatureResultsParquet(t *testing.T) {
	cfg := outputConfig(t, schema.ParquetOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "features.parquet")
	require.NoError(t, PrintFeatureResults(featureFixture(), cfg, time.Second))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPrintFeatureResultsParquetDefaultPath(t *testing.T) {
	cfg := outputConfig(t, schema.ParquetOut)
	cfg.OutputFile = ""
	require.NoError(t, PrintFeatureResults(featureFixture(), cfg, time.Second))

	_, err := os.Stat(cfg.ArtifactPath("engineered_features.parquet"))
	assert.NoError(t, err)
}

func TestPrintModelDefinitionsText(t *testing.T) {
	cfg := outputConfig(t, schema.TextOut)
	require.NoError(t, PrintModelDefinitions(cfg))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "DECOMPOSE")
	assert.Contains(t, content, "order (5,1,2)")
	assert.Contains(t, content, "MAPE")
}

func TestPrintModelDefinitionsJSON(t *testing.T) {
	cfg := outputConfig(t, schema.JSONOut)
	require.NoError(t, PrintModelDefinitions(cfg))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded modelsRenderModel
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Models, 3)
	assert.Len(t, decoded.Metrics, 4)
}

func TestGetMaxFeatureColumns(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow", 40, 2},
		{"default", 80, 2},
		{"wide", 120, 5},
		{"very wide", 300, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, GetMaxFeatureColumns(cfg))
		})
	}
}
