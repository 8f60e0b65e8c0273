package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// Artifact file names written by a full pipeline run.
const (
	PowerBIDataFile     = "powerbi_data.csv"
	TestPredictionsFile = "test_predictions.csv"
	FeaturesFile        = "engineered_features.csv"
	ModelComparisonFile = "model_comparison_results.json"
	SummaryReportFile   = "analysis_summary_report.json"
)

// ExportArtifacts writes the full BI artifact set under cfg.OutputDir.
// Any single write failure aborts the export.
func ExportArtifacts(result *schema.PipelineResult, table *schema.FeatureTable, report *schema.SummaryReport, cfg *contract.Config) error {
	if err := contract.EnsureOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	fmtFloat, _ := createFormatters(cfg.Precision)

	if err := writeWithFile(cfg.ArtifactPath(PowerBIDataFile), func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForForecast(csvWriter, result.Combined, fmtFloat)
	}, "Wrote combined data"); err != nil {
		return fmt.Errorf("export %s: %w", PowerBIDataFile, err)
	}

	if err := writeWithFile(cfg.ArtifactPath(TestPredictionsFile), func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVTestPredictions(csvWriter, result, fmtFloat)
	}, "Wrote test predictions"); err != nil {
		return fmt.Errorf("export %s: %w", TestPredictionsFile, err)
	}

	if err := writeWithFile(cfg.ArtifactPath(FeaturesFile), func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForFeatures(csvWriter, table, cfg.Precision)
	}, "Wrote engineered features"); err != nil {
		return fmt.Errorf("export %s: %w", FeaturesFile, err)
	}

	if err := writeWithFile(cfg.ArtifactPath(ModelComparisonFile), func(w io.Writer) error {
		return writeJSONResultsForForecast(w, result, cfg.SelectMetric)
	}, "Wrote model comparison"); err != nil {
		return fmt.Errorf("export %s: %w", ModelComparisonFile, err)
	}

	if err := writeWithFile(cfg.ArtifactPath(SummaryReportFile), func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote summary report"); err != nil {
		return fmt.Errorf("export %s: %w", SummaryReportFile, err)
	}

	return nil
}

// writeCSVTestPredictions writes the held-out window with one prediction
// column per model that produced predictions.
func writeCSVTestPredictions(w *csv.Writer, result *schema.PipelineResult, fmtFloat func(float64) string) error {
	// Only models with a full prediction vector get a column
	var models []schema.ModelResult
	for _, r := range result.Results {
		if !r.Failed() && len(r.TestPredictions) == len(result.TestDates) {
			models = append(models, r)
		}
	}

	header := []string{"date", "actual_sales"}
	for _, m := range models {
		header = append(header, string(m.Model)+"_pred")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, date := range result.TestDates {
		rec := []string{
			date.Format(schema.DateFormat),
			fmtFloat(result.TestActual[i]),
		}
		for _, m := range models {
			rec = append(rec, fmtFloat(m.TestPredictions[i]))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// BuildSummaryReport assembles the insight summary from the loaded series,
// data quality report and pipeline result.
func BuildSummaryReport(series *schema.Series, table *schema.FeatureTable, quality schema.QualityReport, result *schema.PipelineResult) *schema.SummaryReport {
	report := &schema.SummaryReport{
		GeneratedAt:  time.Now().UTC(),
		BestModel:    result.Best,
		ForecastDays: len(result.Forecast),
		Quality:      quality,
	}

	if best, ok := result.BestResult(); ok {
		report.BestMetrics = best.Metrics
	}

	n := series.Len()
	if n > 0 {
		report.FirstDate = series.Dates[0].Format(schema.DateFormat)
		report.LastDate = series.Dates[n-1].Format(schema.DateFormat)
		report.TotalDays = n
		total := 0.0
		for _, v := range series.Values {
			total += v
		}
		report.TotalSales = total
		report.MeanDailySales = total / float64(n)
		report.TrendDirection = trendDirection(series)
		report.PeakMonth, report.PeakDayOfWeek = peakPeriods(table)
	}

	for _, p := range result.Forecast {
		report.ForecastTotal += p.Value
	}

	return report
}

// trendFlatBand is the relative half-to-half change below which the
// trend counts as flat.
const trendFlatBand = 0.02

// trendDirection compares the mean of the first and second halves of the series.
func trendDirection(series *schema.Series) string {
	n := series.Len()
	if n < 2 {
		return "flat"
	}
	half := n / 2
	firstMean := meanOfValues(series.Values[:half])
	secondMean := meanOfValues(series.Values[half:])
	if firstMean == 0 {
		return "flat"
	}
	change := (secondMean - firstMean) / firstMean
	switch {
	case change > trendFlatBand:
		return "up"
	case change < -trendFlatBand:
		return "down"
	default:
		return "flat"
	}
}

// peakPeriods returns the month (1-12) and day-of-week (0=Monday) with the
// highest mean sales.
func peakPeriods(table *schema.FeatureTable) (int, int) {
	monthSum := make(map[int]float64)
	monthCount := make(map[int]int)
	dowSum := make(map[int]float64)
	dowCount := make(map[int]int)

	for _, row := range table.Rows {
		monthSum[row.Month] += row.Sales
		monthCount[row.Month]++
		dowSum[row.DayOfWeek] += row.Sales
		dowCount[row.DayOfWeek]++
	}

	peakMonth, peakDow := 0, -1
	bestMonthMean, bestDowMean := 0.0, 0.0
	for m := 1; m <= 12; m++ {
		if monthCount[m] == 0 {
			continue
		}
		mean := monthSum[m] / float64(monthCount[m])
		if peakMonth == 0 || mean > bestMonthMean {
			peakMonth, bestMonthMean = m, mean
		}
	}
	for d := 0; d <= 6; d++ {
		if dowCount[d] == 0 {
			continue
		}
		mean := dowSum[d] / float64(dowCount[d])
		if peakDow < 0 || mean > bestDowMean {
			peakDow, bestDowMean = d, mean
		}
	}
	if peakDow < 0 {
		peakDow = 0
	}
	return peakMonth, peakDow
}

// meanOfValues returns the arithmetic mean, or zero for an empty slice.
func meanOfValues(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
