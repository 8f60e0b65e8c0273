// Package loader reads sales history files and validates them into a
// date-indexed series.
package loader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// rawTable is the format-independent view of an input file: a header row
// plus string cells. Parquet input is converted to the same shape.
type rawTable struct {
	Columns []string
	Rows    [][]string
}

// Result is what the loader hands to the rest of the pipeline.
type Result struct {
	Series  *schema.Series
	Records []schema.SalesRecord
	Quality schema.QualityReport
}

// dateLayouts are the calendar layouts accepted for the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// Load reads the file at path, auto-detects the date and sales columns,
// validates every row, and aggregates to one record per calendar day.
// Duplicate dates are collapsed by summing, matching daily aggregation of
// transactional exports; duplicates and calendar gaps are reported, not
// rejected.
func Load(path string) (*Result, error) {
	table, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cols, err := DetectColumns(path, table.Columns)
	if err != nil {
		return nil, err
	}

	records, err := parseRecords(table, cols)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &contract.DataQualityError{
			Column: table.Columns[cols.Date],
			Row:    0,
			Value:  "",
			Cause:  fmt.Errorf("file has no data rows"),
		}
	}

	return aggregateDaily(records, table, cols), nil
}

// readTable dispatches on the file extension.
func readTable(path string) (*rawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readExcel(path)
	case ".parquet":
		return readParquet(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q (supported: .csv, .xlsx, .parquet)", filepath.Ext(path))
	}
}

// parseRecords converts raw cells into typed records, failing on the
// first bad date or non-numeric sales value.
func parseRecords(table *rawTable, cols Columns) ([]schema.SalesRecord, error) {
	records := make([]schema.SalesRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		if cols.Date >= len(row) || cols.Sales >= len(row) {
			continue // ragged trailing row
		}

		date, err := parseDate(row[cols.Date])
		if err != nil {
			return nil, &contract.DataQualityError{
				Column: table.Columns[cols.Date], Row: i + 1, Value: row[cols.Date], Cause: err,
			}
		}

		sales, err := parseNumeric(row[cols.Sales])
		if err != nil {
			return nil, &contract.DataQualityError{
				Column: table.Columns[cols.Sales], Row: i + 1, Value: row[cols.Sales], Cause: err,
			}
		}

		rec := schema.SalesRecord{Date: date, Sales: sales}
		if cols.Quantity >= 0 && cols.Quantity < len(row) {
			if q, err := parseNumeric(row[cols.Quantity]); err == nil {
				rec.Quantity = int(q)
			}
		}
		if cols.Category >= 0 && cols.Category < len(row) {
			rec.Category = strings.TrimSpace(row[cols.Category])
		}
		records = append(records, rec)
	}
	return records, nil
}

// aggregateDaily sorts records, sums same-day values, and fills the
// quality report.
func aggregateDaily(records []schema.SalesRecord, table *rawTable, cols Columns) *Result {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	quality := schema.QualityReport{
		DateColumn:  table.Columns[cols.Date],
		SalesColumn: table.Columns[cols.Sales],
		RowsRead:    len(table.Rows),
	}

	series := &schema.Series{}
	kept := make([]schema.SalesRecord, 0, len(records))
	for _, rec := range records {
		if rec.Sales < 0 {
			quality.NegativeValues++
		}
		n := len(series.Dates)
		if n > 0 && series.Dates[n-1].Equal(rec.Date) {
			series.Values[n-1] += rec.Sales
			kept[n-1].Sales += rec.Sales
			kept[n-1].Quantity += rec.Quantity
			quality.DuplicateDates++
			continue
		}
		series.Dates = append(series.Dates, rec.Date)
		series.Values = append(series.Values, rec.Sales)
		kept = append(kept, rec)
	}

	for i := 1; i < len(series.Dates); i++ {
		gap := int(series.Dates[i].Sub(series.Dates[i-1]).Hours()/24) - 1
		if gap > 0 {
			quality.CalendarGaps += gap
		}
	}
	quality.RowsKept = len(kept)

	return &Result{Series: series, Records: kept, Quality: quality}
}

// parseDate tries each accepted layout in order.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return schema.Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// parseNumeric parses a sales cell, tolerating currency formatting but
// never coercing non-numeric text.
func parseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric")
	}
	return v, nil
}
