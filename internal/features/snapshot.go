package features

import (
	"fmt"
	"time"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// Snapshot freezes the windowed-column parameters and seasonal group
// means learned from an engineered table, so single rows can be derived
// for dates beyond it. Recursive forecasting appends predicted values
// to the series and asks for the next row; seasonal indices stay fixed
// at their training values instead of drifting with predictions.
type Snapshot struct {
	windows      []int
	lags         []int
	trendWindows []int
	holidays     []schema.Holiday

	monthMean   map[int]float64
	dowMean     map[int]float64
	quarterMean map[int]float64
}

// NewSnapshot captures the feature parameters and the table's seasonal
// group means.
func NewSnapshot(table *schema.FeatureTable, cfg *contract.Config) *Snapshot {
	return &Snapshot{
		windows:      cfg.Windows,
		lags:         cfg.Lags,
		trendWindows: cfg.TrendWindows,
		holidays:     cfg.Holidays,
		monthMean:    groupMean(table, func(r *schema.FeatureRow) int { return r.Month }),
		dowMean:      groupMean(table, func(r *schema.FeatureRow) int { return r.DayOfWeek }),
		quarterMean:  groupMean(table, func(r *schema.FeatureRow) int { return r.Quarter }),
	}
}

// Row derives the feature row for the final element of values, dated
// date. Columns match Engineer's output name for name; only the
// seasonal group means differ, being frozen at their snapshot values.
func (s *Snapshot) Row(values []float64, date time.Time) schema.FeatureRow {
	i := len(values) - 1
	row := newCalendarRow(date, values[i])

	for _, w := range s.windows {
		mean, std, lo, hi := schema.Null(), schema.Null(), schema.Null(), schema.Null()
		if i >= w-1 {
			window := values[i-w+1 : i+1]
			mean = meanOf(window)
			std = sampleStd(window, mean)
			lo, hi = minMax(window)
		}
		row.Values[fmt.Sprintf("rolling_mean_%d", w)] = mean
		row.Values[fmt.Sprintf("rolling_std_%d", w)] = std
		row.Values[fmt.Sprintf("rolling_min_%d", w)] = lo
		row.Values[fmt.Sprintf("rolling_max_%d", w)] = hi
	}

	for _, k := range s.lags {
		v := schema.Null()
		if i >= k {
			v = values[i-k]
		}
		row.Values[fmt.Sprintf("lag_%d", k)] = v
	}
	for _, k := range schema.DefaultDiffs {
		v := schema.Null()
		if i >= k {
			v = values[i] - values[i-k]
		}
		row.Values[fmt.Sprintf("diff_%d", k)] = v
	}
	for _, k := range schema.DefaultPctChanges {
		v := schema.Null()
		if i >= k && values[i-k] != 0 {
			v = (values[i] - values[i-k]) / values[i-k]
		}
		row.Values[fmt.Sprintf("pct_change_%d", k)] = v
	}

	m := s.monthMean[row.Month]
	row.Values["monthly_avg"] = m
	row.Values["monthly_seasonality"] = row.Sales / (m + seasonalGuard)
	d := s.dowMean[row.DayOfWeek]
	row.Values["dow_avg"] = d
	row.Values["dow_seasonality"] = row.Sales / (d + seasonalGuard)
	q := s.quarterMean[row.Quarter]
	row.Values["quarter_avg"] = q
	row.Values["quarter_seasonality"] = row.Sales / (q + seasonalGuard)

	for _, h := range s.holidays {
		flag := 0.0
		if nearHoliday(date, h, schema.HolidayWindowDays) {
			flag = 1
		}
		row.Values["is_"+h.Name] = flag
	}

	for _, w := range s.trendWindows {
		v := schema.Null()
		if i >= w-1 {
			v = olsSlope(values[i-w+1 : i+1])
		}
		row.Values[fmt.Sprintf("trend_%d", w)] = v
	}

	return row
}
