package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salecast/salecast/schema"
)

// readRows reads every row of a written file back through the generic
// reader.
func readRows[T any](t *testing.T, path string) []T {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	out := make([]T, reader.NumRows())
	n, err := reader.Read(out)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return out[:n]
}

func TestForecastRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ForecastRun))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"input_rows",
		"feature_rows",
		"forecast_rows",
		"best_model",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestModelScoreStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ModelScore))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id", "model", "mae", "rmse", "mape", "r2",
		"selected", "fit_duration_ms", "fit_error",
	}

	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteForecastRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	now := time.Now()
	end := now.Add(30 * time.Second)
	duration := int32(end.Sub(now).Milliseconds())
	best := "decompose"
	params := `{"horizon":365}`

	data := []ForecastRun{
		{
			RunID: 1, StartTime: now, EndTime: &end, RunDurationMs: &duration,
			InputRows: 1461, FeatureRows: 1461, ForecastRows: 365,
			BestModel: &best, ConfigParams: &params,
		},
		{
			// Still running: nullable fields stay nil.
			RunID: 2, StartTime: now, InputRows: 100,
		},
	}

	require.NoError(t, WriteForecastRunsParquet(data, outputPath))

	rows := readRows[ForecastRun](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].RunID)
	require.NotNil(t, rows[0].BestModel)
	assert.Equal(t, "decompose", *rows[0].BestModel)
	assert.Nil(t, rows[1].EndTime)
}

func TestWriteModelScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scores.parquet")
	fitError := "model arima failed: singular"

	data := []ModelScore{
		{RunID: 1, Model: "gbt", MAE: 12.5, RMSE: 16.2, MAPE: 0.04, R2: 0.92, Selected: true, FitDurationMs: 1800},
		{RunID: 1, Model: "arima", FitError: &fitError},
	}

	require.NoError(t, WriteModelScoresParquet(data, outputPath))

	rows := readRows[ModelScore](t, outputPath)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Selected)
	require.NotNil(t, rows[1].FitError)
	assert.Equal(t, fitError, *rows[1].FitError)
}

func TestWriteFeatureTableParquetDropsNulls(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "features.parquet")

	table := &schema.FeatureTable{
		Columns: []string{"rolling_mean_7", "lag_1"},
		Rows: []schema.FeatureRow{
			{
				Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Sales: 100,
				Year: 2024, Month: 1, Day: 1,
				Values: map[string]float64{
					"rolling_mean_7": schema.Null(),
					"lag_1":          schema.Null(),
				},
			},
			{
				Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Sales: 110,
				Year: 2024, Month: 1, Day: 2,
				Values: map[string]float64{
					"rolling_mean_7": schema.Null(),
					"lag_1":          100,
				},
			},
		},
	}

	require.NoError(t, WriteFeatureTableParquet(table, outputPath))

	rows := readRows[FeatureExportRow](t, outputPath)
	require.Len(t, rows, 2)
	assert.Empty(t, rows[0].Name)
	assert.Equal(t, []string{"lag_1"}, rows[1].Name)
	assert.Equal(t, []float64{100}, rows[1].Value)
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	best := "gbt"
	records := []schema.RunRecord{
		{RunID: 7, StartTime: now, InputRows: 10, FeatureRows: 10, ForecastRows: 5, BestModel: &best},
	}

	out := ConvertRunRecords(records)
	require.Len(t, out, 1)
	assert.Equal(t, int64(7), out[0].RunID)
	assert.Equal(t, &best, out[0].BestModel)
}

func TestConvertModelScoreRecords(t *testing.T) {
	records := []schema.ModelScoreRecord{
		{RunID: 7, Model: "decompose", MAPE: 0.08, Selected: true},
	}

	out := ConvertModelScoreRecords(records)
	require.Len(t, out, 1)
	assert.Equal(t, "decompose", out[0].Model)
	assert.True(t, out[0].Selected)
}
