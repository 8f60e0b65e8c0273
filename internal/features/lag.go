package features

import (
	"fmt"

	"github.com/salecast/salecast/schema"
)

// addLagFeatures shifts the series by each lag offset and derives
// difference and percentage-change columns at fixed offsets. A lag is
// null where no observation exists k rows earlier; a percentage change
// against a zero base is null rather than infinite.
//
// Offsets are row shifts, not calendar arithmetic: on input with
// calendar gaps, lag_k refers to the observation k rows back, which may
// be more than k days earlier. On gap-free daily input the two coincide.
func addLagFeatures(table *schema.FeatureTable, values []float64, lags []int) {
	for _, k := range lags {
		set := addColumn(table, fmt.Sprintf("lag_%d", k))
		for i := range values {
			if i < k {
				set(i, schema.Null())
				continue
			}
			set(i, values[i-k])
		}
	}

	for _, k := range schema.DefaultDiffs {
		set := addColumn(table, fmt.Sprintf("diff_%d", k))
		for i := range values {
			if i < k {
				set(i, schema.Null())
				continue
			}
			set(i, values[i]-values[i-k])
		}
	}

	for _, k := range schema.DefaultPctChanges {
		set := addColumn(table, fmt.Sprintf("pct_change_%d", k))
		for i := range values {
			if i < k || values[i-k] == 0 {
				set(i, schema.Null())
				continue
			}
			set(i, (values[i]-values[i-k])/values[i-k])
		}
	}
}
