package outwriter

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/salecast/salecast/schema"
)

// forecastRenderModel is the JSON shape for pipeline results.
type forecastRenderModel struct {
	GeneratedAt  time.Time                    `json:"generated_at"`
	SelectMetric schema.SelectMetric          `json:"select_metric"`
	BestModel    schema.ModelKind             `json:"best_model"`
	Horizon      int                          `json:"horizon"`
	TrainRows    int                          `json:"train_rows"`
	TestRows     int                          `json:"test_rows"`
	Models       []schema.EnrichedModelResult `json:"models"`
}

// sortResultsForRanking orders results best-first by the selection metric.
// R2 ranks descending; the error metrics rank ascending. Failed models sink.
func sortResultsForRanking(results []schema.ModelResult, metric schema.SelectMetric) []schema.ModelResult {
	sorted := make([]schema.ModelResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if a.Failed() {
			return false
		}
		if metric == schema.SelectR2 {
			return a.Metrics.R2 > b.Metrics.R2
		}
		return a.Metrics.MetricFor(metric) < b.Metrics.MetricFor(metric)
	})
	return sorted
}

// RankModelResults sorts results best-first by metric and enriches them
// with rank and accuracy label.
func RankModelResults(results []schema.ModelResult, metric schema.SelectMetric, best schema.ModelKind) []schema.EnrichedModelResult {
	return schema.EnrichModelResults(sortResultsForRanking(results, metric), best)
}

// writeJSONResultsForForecast marshals the pipeline results to JSON and writes them.
func writeJSONResultsForForecast(w io.Writer, result *schema.PipelineResult, metric schema.SelectMetric) error {
	model := forecastRenderModel{
		GeneratedAt:  time.Now().UTC(),
		SelectMetric: metric,
		BestModel:    result.Best,
		Horizon:      result.Horizon,
		TrainRows:    result.TrainRows,
		TestRows:     result.TestRows,
		Models:       RankModelResults(result.Results, metric, result.Best),
	}
	return writeJSON(w, model)
}

// writeCSVResultsForForecast writes the combined historical+forecast table to a CSV writer.
// Bounds on Historical rows are undefined and render as empty cells.
func writeCSVResultsForForecast(w *csv.Writer, rows []schema.CombinedRow, fmtFloat func(float64) string) error {
	header := []string{
		"date",
		"sales",
		"data_type",
		"forecast_lower",
		"forecast_upper",
		"year",
		"month",
		"quarter",
		"day_of_week",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			r.Date.Format(schema.DateFormat),
			fmtFloat(r.Sales),
			string(r.DataType),
			formatBound(r.ForecastLower, fmtFloat),
			formatBound(r.ForecastUpper, fmtFloat),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Quarter),
			strconv.Itoa(r.DayOfWeek),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// formatBound renders a confidence bound, treating the undefined sentinel as empty.
func formatBound(v float64, fmtFloat func(float64) string) string {
	if schema.IsNull(v) {
		return ""
	}
	return fmtFloat(v)
}
