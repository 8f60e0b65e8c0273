package features

import (
	"github.com/salecast/salecast/schema"
)

// seasonalGuard keeps the ratio finite when a group mean is zero.
const seasonalGuard = 1e-6

// addSeasonalFeatures joins group means by month, day-of-week, and
// quarter back onto each row, plus the ratio of the observation to its
// group mean. Group means cover the whole series, so these columns are
// always defined.
func addSeasonalFeatures(table *schema.FeatureTable) {
	monthMean := groupMean(table, func(r *schema.FeatureRow) int { return r.Month })
	dowMean := groupMean(table, func(r *schema.FeatureRow) int { return r.DayOfWeek })
	quarterMean := groupMean(table, func(r *schema.FeatureRow) int { return r.Quarter })

	setMonthAvg := addColumn(table, "monthly_avg")
	setMonthRatio := addColumn(table, "monthly_seasonality")
	setDowAvg := addColumn(table, "dow_avg")
	setDowRatio := addColumn(table, "dow_seasonality")
	setQuarterAvg := addColumn(table, "quarter_avg")
	setQuarterRatio := addColumn(table, "quarter_seasonality")

	for i := range table.Rows {
		row := &table.Rows[i]

		m := monthMean[row.Month]
		setMonthAvg(i, m)
		setMonthRatio(i, row.Sales/(m+seasonalGuard))

		d := dowMean[row.DayOfWeek]
		setDowAvg(i, d)
		setDowRatio(i, row.Sales/(d+seasonalGuard))

		q := quarterMean[row.Quarter]
		setQuarterAvg(i, q)
		setQuarterRatio(i, row.Sales/(q+seasonalGuard))
	}
}

// groupMean averages sales per key over the whole table.
func groupMean(table *schema.FeatureTable, key func(*schema.FeatureRow) int) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i := range table.Rows {
		k := key(&table.Rows[i])
		sums[k] += table.Rows[i].Sales
		counts[k]++
	}
	means := make(map[int]float64, len(sums))
	for k, sum := range sums {
		means[k] = sum / float64(counts[k])
	}
	return means
}
