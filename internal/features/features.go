// Package features derives the engineered feature table from a
// date-indexed sales series: calendar fields, rolling statistics, lags,
// seasonal indices, holiday flags, and trend slopes.
package features

import (
	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// Engineer computes one feature row per series observation. Windowed
// values whose trailing window is not fully populated are null, never
// zero-filled; calendar fields and seasonal indices are always defined.
func Engineer(series *schema.Series, cfg *contract.Config) *schema.FeatureTable {
	table := &schema.FeatureTable{Rows: make([]schema.FeatureRow, series.Len())}
	for i := range series.Dates {
		table.Rows[i] = newCalendarRow(series.Dates[i], series.Values[i])
	}

	addRollingFeatures(table, series.Values, cfg.Windows)
	addLagFeatures(table, series.Values, cfg.Lags)
	addSeasonalFeatures(table)
	addHolidayFeatures(table, cfg.Holidays)
	addTrendFeatures(table, series.Values, cfg.TrendWindows)

	return table
}

// addColumn registers a named feature column and returns a setter for it.
func addColumn(table *schema.FeatureTable, name string) func(row int, v float64) {
	table.Columns = append(table.Columns, name)
	return func(row int, v float64) {
		table.Rows[row].Values[name] = v
	}
}
