package features

import (
	"fmt"

	"github.com/salecast/salecast/schema"
)

// addTrendFeatures computes the least-squares slope of sales over each
// trailing window. The first W-1 rows are null, same as rolling stats.
func addTrendFeatures(table *schema.FeatureTable, values []float64, windows []int) {
	for _, w := range windows {
		set := addColumn(table, fmt.Sprintf("trend_%d", w))
		for i := range values {
			if i < w-1 {
				set(i, schema.Null())
				continue
			}
			set(i, olsSlope(values[i-w+1:i+1]))
		}
	}
}

// olsSlope fits y = a + b*x with x = 0..n-1 and returns b.
func olsSlope(y []float64) float64 {
	n := float64(len(y))
	if n < 2 {
		return 0
	}

	xMean := (n - 1) / 2
	yMean := meanOf(y)

	var num, den float64
	for i, v := range y {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	return num / den
}
