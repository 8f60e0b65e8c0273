package core

import (
	"time"

	"github.com/salecast/salecast/schema"
)

// AssembleCombined builds the exported historical+forecast table: every
// historical observation with undefined bounds, followed by one row per
// forecast point. Forecast rows are contiguous and strictly after the last
// historical date.
func AssembleCombined(series *schema.Series, forecast []schema.ForecastPoint) []schema.CombinedRow {
	rows := make([]schema.CombinedRow, 0, series.Len()+len(forecast))

	for i, date := range series.Dates {
		row := newCombinedRow(date, series.Values[i], schema.HistoricalData)
		row.ForecastLower = schema.Null()
		row.ForecastUpper = schema.Null()
		rows = append(rows, row)
	}

	for _, p := range forecast {
		row := newCombinedRow(p.Date, p.Value, schema.ForecastData)
		row.ForecastLower = p.Lower
		row.ForecastUpper = p.Upper
		rows = append(rows, row)
	}

	return rows
}

// newCombinedRow fills the calendar columns shared by both row kinds.
func newCombinedRow(date time.Time, sales float64, kind schema.DataType) schema.CombinedRow {
	return schema.CombinedRow{
		Date:      date,
		Sales:     sales,
		DataType:  kind,
		Year:      date.Year(),
		Month:     int(date.Month()),
		Quarter:   schema.QuarterOf(int(date.Month())),
		DayOfWeek: schema.DayOfWeekMonday(date),
	}
}
