package contract

import (
	"testing"

	"github.com/salecast/salecast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation unchanged.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputPathStr: "sales.csv",
		Horizon:      DefaultHorizon,
		TestDays:     DefaultTestDays,
		Precision:    DefaultPrecision,
		Color:        "yes",
	}
}

// TestProcessAndValidateDefaults checks that empty optionals resolve to defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "sales.csv", cfg.InputPath)
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.Equal(t, schema.DefaultWindows, cfg.Windows)
	assert.Equal(t, schema.DefaultLags, cfg.Lags)
	assert.Equal(t, schema.AllModelKinds, cfg.Models)
	assert.Equal(t, schema.SelectMAPE, cfg.SelectMetric)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
	assert.Equal(t, ARIMAOrder{P: 5, D: 1, Q: 2}, cfg.ARIMA)
	assert.Equal(t, DefaultGBTParams(), cfg.GBT)
	assert.Equal(t, int64(DefaultSeed), cfg.Seed)
	assert.True(t, cfg.UseColors)
}

// TestProcessAndValidateRejects covers the main invalid inputs.
func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "zero horizon", mutate: func(in *ConfigRawInput) { in.Horizon = 0 }},
		{name: "huge horizon", mutate: func(in *ConfigRawInput) { in.Horizon = MaxHorizon + 1 }},
		{name: "zero test days", mutate: func(in *ConfigRawInput) { in.TestDays = 0 }},
		{name: "bad window", mutate: func(in *ConfigRawInput) { in.Windows = "7,zebra" }},
		{name: "negative lag", mutate: func(in *ConfigRawInput) { in.Lags = "-3" }},
		{name: "unknown model", mutate: func(in *ConfigRawInput) { in.Models = "prophet" }},
		{name: "unknown metric", mutate: func(in *ConfigRawInput) { in.SelectMetric = "wape" }},
		{name: "unknown output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.HistoryBackend = "oracle" }},
		{name: "short arima order", mutate: func(in *ConfigRawInput) { in.ARIMAOrderStr = "5,1" }},
		{name: "negative arima order", mutate: func(in *ConfigRawInput) { in.ARIMAOrderStr = "5,-1,2" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

// TestParseIntListSortsAndDedupes verifies list normalization.
func TestParseIntListSortsAndDedupes(t *testing.T) {
	out, err := parseIntList("30, 7,7 ,14", []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 14, 30}, out)
}

// TestParseModelsDedupes keeps the first occurrence of each model.
func TestParseModelsDedupes(t *testing.T) {
	out, err := parseModels("gbt,arima,gbt")
	require.NoError(t, err)
	assert.Equal(t, []schema.ModelKind{schema.GBTModel, schema.ARIMAModel}, out)
}

// TestConfigClone verifies slices are deep-copied.
func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	clone := cfg.Clone()
	clone.Windows[0] = 999
	clone.Models[0] = schema.GBTModel

	assert.Equal(t, schema.DefaultWindows[0], cfg.Windows[0])
	assert.Equal(t, schema.AllModelKinds[0], cfg.Models[0])
}

// TestConfigParams records the settings that shape a run.
func TestConfigParams(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	params := cfg.ConfigParams()
	assert.Equal(t, "sales.csv", params["input"])
	assert.Equal(t, DefaultHorizon, params["horizon"])
	assert.Contains(t, params, "models")
	assert.Contains(t, params, "seed")
}
