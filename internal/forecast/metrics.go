package forecast

import (
	"math"

	"github.com/salecast/salecast/schema"
)

// mapeGuard keeps the percentage error finite for near-zero actuals.
const mapeGuard = 1e-9

// Evaluate computes the standard regression metrics of predicted
// against actual. Slices must be the same non-zero length; MAPE is a
// fraction, not a percent.
func Evaluate(actual, predicted []float64) schema.EvalMetrics {
	n := float64(len(actual))

	var absSum, sqSum, pctSum float64
	for i := range actual {
		d := actual[i] - predicted[i]
		absSum += math.Abs(d)
		sqSum += d * d
		pctSum += math.Abs(d) / math.Max(math.Abs(actual[i]), mapeGuard)
	}

	mean := 0.0
	for _, a := range actual {
		mean += a
	}
	mean /= n

	var totSum float64
	for _, a := range actual {
		d := a - mean
		totSum += d * d
	}

	r2 := 0.0
	if totSum > 0 {
		r2 = 1 - sqSum/totSum
	}

	return schema.EvalMetrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		MAPE: pctSum / n,
		R2:   r2,
	}
}
