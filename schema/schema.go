// Package schema has configs, models and shared constants for all parts of salecast.
package schema

import "time"

// SalesRecord is a single observation from the input file.
// One record per calendar day after daily aggregation.
type SalesRecord struct {
	Date     time.Time // Calendar day, normalized to UTC midnight
	Sales    float64   // Sales value for the day
	Quantity int       // Optional unit count (0 when absent)
	Category string    // Optional category label (empty when absent)
}

// Series is a date-indexed sales series. Dates and Values are parallel
// slices sorted ascending by date with at most one entry per day.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of observations in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Slice returns a shallow sub-series covering [i, j).
func (s *Series) Slice(i, j int) *Series {
	return &Series{Dates: s.Dates[i:j], Values: s.Values[i:j]}
}

// Last returns the date of the final observation, or the zero time
// for an empty series.
func (s *Series) Last() time.Time {
	if len(s.Dates) == 0 {
		return time.Time{}
	}
	return s.Dates[len(s.Dates)-1]
}

// QualityReport summarizes what the loader saw while reading a file.
// Duplicates and gaps are allowed but reported; they are not errors.
type QualityReport struct {
	DateColumn     string `json:"date_column"`     // Detected date column name
	SalesColumn    string `json:"sales_column"`    // Detected sales column name
	RowsRead       int    `json:"rows_read"`       // Raw rows in the file
	RowsKept       int    `json:"rows_kept"`       // Rows after daily aggregation
	DuplicateDates int    `json:"duplicate_dates"` // Rows collapsed into an earlier date
	CalendarGaps   int    `json:"calendar_gaps"`   // Missing days between first and last date
	NegativeValues int    `json:"negative_values"` // Observations below zero
}

// FeatureRow is one engineered row per calendar day. Calendar fields are
// always defined; windowed values live in Values keyed by column name and
// use NaN for entries whose trailing window is not fully populated.
type FeatureRow struct {
	Date  time.Time
	Sales float64

	Year       int
	Month      int // 1-12
	Day        int // 1-31
	DayOfWeek  int // 0=Monday .. 6=Sunday
	DayOfYear  int
	Quarter    int // 1-4
	WeekOfYear int // ISO week

	IsWeekend      bool
	IsMonthStart   bool
	IsMonthEnd     bool
	IsQuarterStart bool
	IsQuarterEnd   bool
	IsYearStart    bool
	IsYearEnd      bool

	Values map[string]float64
}

// FeatureTable is the full engineered feature table. Columns fixes the
// order of the windowed feature names across every row.
type FeatureTable struct {
	Columns []string
	Rows    []FeatureRow
}

// Len returns the number of rows in the table.
func (t *FeatureTable) Len() int {
	return len(t.Rows)
}

// Dates returns the row dates in order.
func (t *FeatureTable) Dates() []time.Time {
	out := make([]time.Time, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Date
	}
	return out
}

// Sales returns the row sales values in order.
func (t *FeatureTable) Sales() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Sales
	}
	return out
}
