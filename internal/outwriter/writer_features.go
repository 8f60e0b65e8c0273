package outwriter

import (
	"encoding/csv"
	"strconv"

	"github.com/salecast/salecast/schema"
)

// featureCSVHeader returns the CSV header for a feature table: the fixed
// calendar columns followed by the windowed feature columns in table order.
func featureCSVHeader(columns []string) []string {
	header := []string{
		"date",
		"sales",
		"year",
		"month",
		"day",
		"day_of_week",
		"day_of_year",
		"week_of_year",
		"quarter",
		"is_weekend",
		"is_month_start",
		"is_month_end",
		"is_quarter_start",
		"is_quarter_end",
		"is_year_start",
		"is_year_end",
	}
	return append(header, columns...)
}

// writeCSVResultsForFeatures writes the full feature table to a CSV writer.
// Undefined windowed values render as empty cells, never as zero.
func writeCSVResultsForFeatures(w *csv.Writer, table *schema.FeatureTable, precision int) error {
	if err := w.Write(featureCSVHeader(table.Columns)); err != nil {
		return err
	}

	for _, row := range table.Rows {
		rec := []string{
			row.Date.Format(schema.DateFormat),
			schema.FormatCell(row.Sales, precision),
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Day),
			strconv.Itoa(row.DayOfWeek),
			strconv.Itoa(row.DayOfYear),
			strconv.Itoa(row.WeekOfYear),
			strconv.Itoa(row.Quarter),
			boolCell(row.IsWeekend),
			boolCell(row.IsMonthStart),
			boolCell(row.IsMonthEnd),
			boolCell(row.IsQuarterStart),
			boolCell(row.IsQuarterEnd),
			boolCell(row.IsYearStart),
			boolCell(row.IsYearEnd),
		}
		for _, col := range table.Columns {
			rec = append(rec, schema.FormatCell(row.Values[col], precision))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// FeatureJSONRows converts the feature table into JSON-safe rows.
// The NaN sentinel cannot be encoded, so undefined values become null.
func FeatureJSONRows(table *schema.FeatureTable) []map[string]any {
	rows := make([]map[string]any, table.Len())
	for i, row := range table.Rows {
		obj := map[string]any{
			"date":             row.Date.Format(schema.DateFormat),
			"sales":            row.Sales,
			"year":             row.Year,
			"month":            row.Month,
			"day":              row.Day,
			"day_of_week":      row.DayOfWeek,
			"day_of_year":      row.DayOfYear,
			"week_of_year":     row.WeekOfYear,
			"quarter":          row.Quarter,
			"is_weekend":       row.IsWeekend,
			"is_month_start":   row.IsMonthStart,
			"is_month_end":     row.IsMonthEnd,
			"is_quarter_start": row.IsQuarterStart,
			"is_quarter_end":   row.IsQuarterEnd,
			"is_year_start":    row.IsYearStart,
			"is_year_end":      row.IsYearEnd,
		}
		for _, col := range table.Columns {
			v := row.Values[col]
			if schema.IsNull(v) {
				obj[col] = nil
			} else {
				obj[col] = v
			}
		}
		rows[i] = obj
	}
	return rows
}
