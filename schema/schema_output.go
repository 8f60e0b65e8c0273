package schema

import "time"

// CombinedRow is one row of the exported historical+forecast table.
// Bounds are NaN on Historical rows and populated on Forecast rows.
type CombinedRow struct {
	Date          time.Time `json:"date"`
	Sales         float64   `json:"sales"`
	DataType      DataType  `json:"data_type"`
	ForecastLower float64   `json:"forecast_lower"`
	ForecastUpper float64   `json:"forecast_upper"`

	// Derived calendar columns for BI slicing.
	Year      int `json:"year"`
	Month     int `json:"month"`
	Quarter   int `json:"quarter"`
	DayOfWeek int `json:"day_of_week"`
}

// EnrichedModelResult adds presentation data to a ModelResult.
type EnrichedModelResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Best  bool   `json:"best"`
	ModelResult
}

// GetPlainLabel returns a plain text accuracy label for a MAPE value.
func GetPlainLabel(mape float64) string {
	switch {
	case mape < 0.10:
		return "Excellent"
	case mape < 0.20:
		return "Good"
	case mape < 0.50:
		return "Fair"
	default:
		return "Poor"
	}
}

// EnrichModelResults adds rank and label to model results, assuming the
// slice is already sorted best-first. Failed models rank last with no label.
func EnrichModelResults(results []ModelResult, best ModelKind) []EnrichedModelResult {
	output := make([]EnrichedModelResult, len(results))
	for i, r := range results {
		label := ""
		if !r.Failed() {
			label = GetPlainLabel(r.Metrics.MAPE)
		}
		output[i] = EnrichedModelResult{
			Rank:        i + 1,
			Label:       label,
			Best:        r.Model == best && !r.Failed(),
			ModelResult: r,
		}
	}
	return output
}

// SummaryReport is the free-form insight summary exported as JSON.
type SummaryReport struct {
	GeneratedAt    time.Time   `json:"generated_at"`
	FirstDate      string      `json:"first_date"`
	LastDate       string      `json:"last_date"`
	TotalDays      int         `json:"total_days"`
	TotalSales     float64     `json:"total_sales"`
	MeanDailySales float64     `json:"mean_daily_sales"`
	TrendDirection string      `json:"trend_direction"` // "up", "down" or "flat"
	PeakMonth      int         `json:"peak_month"`
	PeakDayOfWeek  int         `json:"peak_day_of_week"`
	BestModel      ModelKind   `json:"best_model"`
	BestMetrics    EvalMetrics `json:"best_metrics"`
	ForecastDays   int         `json:"forecast_days"`
	ForecastTotal  float64     `json:"forecast_total"`
	Quality        QualityReport `json:"data_quality"`
}
