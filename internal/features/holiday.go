package features

import (
	"time"

	"github.com/salecast/salecast/schema"
)

// addHolidayFeatures flags each row that falls within the +/- window
// around a holiday date. Flags are 0/1 columns named is_<holiday>.
func addHolidayFeatures(table *schema.FeatureTable, holidays []schema.Holiday) {
	for _, h := range holidays {
		set := addColumn(table, "is_"+h.Name)
		for i := range table.Rows {
			if nearHoliday(table.Rows[i].Date, h, schema.HolidayWindowDays) {
				set(i, 1)
			} else {
				set(i, 0)
			}
		}
	}
}

// nearHoliday reports whether date falls within windowDays of the
// holiday in any adjacent year. The year-boundary check matters for
// dates like December 30th against a January 1st holiday.
func nearHoliday(date time.Time, h schema.Holiday, windowDays int) bool {
	for _, year := range []int{date.Year() - 1, date.Year(), date.Year() + 1} {
		occurrence := time.Date(year, time.Month(h.Month), h.Day, 0, 0, 0, 0, time.UTC)
		diff := date.Sub(occurrence).Hours() / 24
		if diff < 0 {
			diff = -diff
		}
		if diff <= float64(windowDays) {
			return true
		}
	}
	return false
}
