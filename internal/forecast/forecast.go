// Package forecast implements the forecasting models: an additive
// trend/seasonality decomposition, a classical ARIMA wrapper, and
// gradient-boosted regression trees over the engineered feature table.
package forecast

import (
	"fmt"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// confidenceZ is the normal quantile for 95% intervals.
const confidenceZ = 1.96

// New constructs an unfitted model of the given kind.
func New(kind schema.ModelKind, cfg *contract.Config) (contract.Forecaster, error) {
	switch kind {
	case schema.DecomposeModel:
		return newDecompose(cfg.Holidays), nil
	case schema.ARIMAModel:
		return newARIMA(cfg.ARIMA), nil
	case schema.GBTModel:
		return newGBT(cfg), nil
	default:
		return nil, fmt.Errorf("unknown model %q", kind)
	}
}

// clipNonNegative floors a forecast value at zero. Sales cannot go
// below zero, so neither do predictions or their bounds.
func clipNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
