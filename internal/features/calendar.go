package features

import (
	"time"

	"github.com/salecast/salecast/schema"
)

// newCalendarRow fills every calendar-derived field for one observation.
func newCalendarRow(date time.Time, sales float64) schema.FeatureRow {
	_, isoWeek := date.ISOWeek()
	dow := schema.DayOfWeekMonday(date)
	month := int(date.Month())
	quarter := schema.QuarterOf(month)

	next := date.AddDate(0, 0, 1)
	return schema.FeatureRow{
		Date:  date,
		Sales: sales,

		Year:       date.Year(),
		Month:      month,
		Day:        date.Day(),
		DayOfWeek:  dow,
		DayOfYear:  date.YearDay(),
		Quarter:    quarter,
		WeekOfYear: isoWeek,

		IsWeekend:      dow >= 5,
		IsMonthStart:   date.Day() == 1,
		IsMonthEnd:     next.Month() != date.Month(),
		IsQuarterStart: date.Day() == 1 && (month-1)%3 == 0,
		IsQuarterEnd:   schema.QuarterOf(int(next.Month())) != quarter,
		IsYearStart:    date.YearDay() == 1,
		IsYearEnd:      month == 12 && date.Day() == 31,

		Values: make(map[string]float64),
	}
}
