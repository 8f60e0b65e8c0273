package features

import (
	"fmt"
	"math"

	"github.com/salecast/salecast/schema"
)

// addRollingFeatures computes trailing mean/std/min/max for each window
// size. A row's value covers the window ending at that row; the first
// W-1 rows are null because their window is not fully populated.
func addRollingFeatures(table *schema.FeatureTable, values []float64, windows []int) {
	for _, w := range windows {
		setMean := addColumn(table, fmt.Sprintf("rolling_mean_%d", w))
		setStd := addColumn(table, fmt.Sprintf("rolling_std_%d", w))
		setMin := addColumn(table, fmt.Sprintf("rolling_min_%d", w))
		setMax := addColumn(table, fmt.Sprintf("rolling_max_%d", w))

		for i := range values {
			if i < w-1 {
				setMean(i, schema.Null())
				setStd(i, schema.Null())
				setMin(i, schema.Null())
				setMax(i, schema.Null())
				continue
			}
			window := values[i-w+1 : i+1]
			mean := meanOf(window)
			setMean(i, mean)
			setStd(i, sampleStd(window, mean))
			lo, hi := minMax(window)
			setMin(i, lo)
			setMax(i, hi)
		}
	}
}

func meanOf(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStd uses the n-1 denominator. A single-element window has no
// spread estimate and is null.
func sampleStd(vals []float64, mean float64) float64 {
	if len(vals) < 2 {
		return schema.Null()
	}
	sum := 0.0
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

func minMax(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
