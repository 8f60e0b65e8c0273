// Package parquet provides data structures and functions for exporting
// salecast tables to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/salecast/salecast/schema"
)

// ForecastRun represents a single pipeline run with metadata.
// This struct maps to the salecast_runs database table.
type ForecastRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// InputRows is the number of daily observations loaded
	InputRows int32 `parquet:"input_rows,snappy"`

	// FeatureRows is the number of engineered feature rows
	FeatureRows int32 `parquet:"feature_rows,snappy"`

	// ForecastRows is the number of forecast days produced
	ForecastRows int32 `parquet:"forecast_rows,snappy"`

	// BestModel is the selected model for this run (nullable)
	BestModel *string `parquet:"best_model,optional,snappy"`

	// ConfigParams contains the JSON-encoded run parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ModelScore represents one model's evaluation inside a run.
// This struct maps to the salecast_model_scores database table.
type ModelScore struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Model is the model name
	Model string `parquet:"model,snappy"`

	// MAE is the mean absolute error on the test window
	MAE float64 `parquet:"mae,snappy"`

	// RMSE is the root mean squared error on the test window
	RMSE float64 `parquet:"rmse,snappy"`

	// MAPE is the mean absolute percentage error, as a fraction
	MAPE float64 `parquet:"mape,snappy"`

	// R2 is the coefficient of determination on the test window
	R2 float64 `parquet:"r2,snappy"`

	// Selected indicates this model won the comparison
	Selected bool `parquet:"selected,snappy"`

	// FitDurationMs is how long the model took to fit
	FitDurationMs int32 `parquet:"fit_duration_ms,snappy"`

	// FitError is the failure message for models that did not fit (nullable)
	FitError *string `parquet:"fit_error,optional,snappy"`
}

// FeatureExportRow is the flat parquet layout of one engineered feature
// row. Windowed columns are optional: a missing value means the trailing
// window was not fully populated, never zero.
type FeatureExportRow struct {
	Date  string  `parquet:"date,snappy"`
	Sales float64 `parquet:"sales,snappy"`

	Year       int32 `parquet:"year,snappy"`
	Month      int32 `parquet:"month,snappy"`
	Day        int32 `parquet:"day,snappy"`
	DayOfWeek  int32 `parquet:"day_of_week,snappy"`
	DayOfYear  int32 `parquet:"day_of_year,snappy"`
	Quarter    int32 `parquet:"quarter,snappy"`
	WeekOfYear int32 `parquet:"week_of_year,snappy"`

	IsWeekend      bool `parquet:"is_weekend,snappy"`
	IsMonthStart   bool `parquet:"is_month_start,snappy"`
	IsMonthEnd     bool `parquet:"is_month_end,snappy"`
	IsQuarterStart bool `parquet:"is_quarter_start,snappy"`
	IsQuarterEnd   bool `parquet:"is_quarter_end,snappy"`
	IsYearStart    bool `parquet:"is_year_start,snappy"`
	IsYearEnd      bool `parquet:"is_year_end,snappy"`

	Name  []string  `parquet:"feature_name,snappy"`
	Value []float64 `parquet:"feature_value,snappy"`
}

// WriteForecastRunsParquet writes a slice of ForecastRun structs to a Parquet file.
func WriteForecastRunsParquet(data []ForecastRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteModelScoresParquet writes a slice of ModelScore structs to a Parquet file.
func WriteModelScoresParquet(data []ModelScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFeatureTableParquet writes the engineered feature table to a
// Parquet file. Null windowed values are dropped from the per-row
// name/value lists rather than written as zeros.
func WriteFeatureTableParquet(table *schema.FeatureTable, outputPath string) error {
	rows := make([]FeatureExportRow, table.Len())
	for i := range table.Rows {
		rows[i] = convertFeatureRow(&table.Rows[i], table.Columns)
	}
	return writeParquet(rows, outputPath)
}

// writeParquet writes any tagged row type with schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// convertFeatureRow flattens one feature row, keeping only defined
// windowed values.
func convertFeatureRow(row *schema.FeatureRow, columns []string) FeatureExportRow {
	out := FeatureExportRow{
		Date:  row.Date.Format(schema.DateFormat),
		Sales: row.Sales,

		Year:       int32(row.Year),
		Month:      int32(row.Month),
		Day:        int32(row.Day),
		DayOfWeek:  int32(row.DayOfWeek),
		DayOfYear:  int32(row.DayOfYear),
		Quarter:    int32(row.Quarter),
		WeekOfYear: int32(row.WeekOfYear),

		IsWeekend:      row.IsWeekend,
		IsMonthStart:   row.IsMonthStart,
		IsMonthEnd:     row.IsMonthEnd,
		IsQuarterStart: row.IsQuarterStart,
		IsQuarterEnd:   row.IsQuarterEnd,
		IsYearStart:    row.IsYearStart,
		IsYearEnd:      row.IsYearEnd,
	}
	for _, col := range columns {
		v := row.Values[col]
		if schema.IsNull(v) {
			continue
		}
		out.Name = append(out.Name, col)
		out.Value = append(out.Value, v)
	}
	return out
}

// ConvertRunRecords converts schema.RunRecord to ForecastRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ForecastRun {
	result := make([]ForecastRun, len(records))
	for i, record := range records {
		result[i] = ForecastRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			InputRows:     record.InputRows,
			FeatureRows:   record.FeatureRows,
			ForecastRows:  record.ForecastRows,
			BestModel:     record.BestModel,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertModelScoreRecords converts schema.ModelScoreRecord to ModelScore for Parquet export.
func ConvertModelScoreRecords(records []schema.ModelScoreRecord) []ModelScore {
	result := make([]ModelScore, len(records))
	for i, record := range records {
		result[i] = ModelScore{
			RunID:         record.RunID,
			Model:         record.Model,
			MAE:           record.MAE,
			RMSE:          record.RMSE,
			MAPE:          record.MAPE,
			R2:            record.R2,
			Selected:      record.Selected,
			FitDurationMs: record.FitDurationMs,
			FitError:      record.FitError,
		}
	}
	return result
}
