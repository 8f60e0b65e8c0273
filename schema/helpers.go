package schema

import (
	"math"
	"strconv"
	"time"
)

// Null returns the sentinel for an undefined windowed value.
// Undefined means the trailing window or lag is not fully populated.
func Null() float64 {
	return math.NaN()
}

// IsNull reports whether v is the undefined sentinel.
func IsNull(v float64) bool {
	return math.IsNaN(v)
}

// Midnight normalizes t to UTC midnight of the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatCell renders a float for CSV output with the given precision.
// Undefined values render as an empty cell, never as zero.
func FormatCell(v float64, precision int) string {
	if IsNull(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// DayOfWeekMonday returns the weekday with Monday as 0 and Sunday as 6,
// matching the convention used throughout the feature table.
func DayOfWeekMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// QuarterOf returns the calendar quarter (1-4) for a month (1-12).
func QuarterOf(month int) int {
	return (month-1)/3 + 1
}
