package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

func TestARIMATooFewObservations(t *testing.T) {
	model := newARIMA(contract.ARIMAOrder{P: 5, D: 1, Q: 2})
	series := syntheticSeries(10, func(i int) float64 { return float64(i) })

	err := model.Fit(&contract.TrainingData{Series: series})

	var fitErr *contract.ModelFitError
	require.ErrorAs(t, err, &fitErr)
	assert.Equal(t, schema.ARIMAModel, fitErr.Model)
}

func TestARIMAPredictBeforeFit(t *testing.T) {
	model := newARIMA(contract.ARIMAOrder{P: 1, D: 1, Q: 1})
	_, err := model.Predict(5)
	assert.ErrorContains(t, err, "not fitted")
}

func TestDifferencedStd(t *testing.T) {
	// First differences of a linear series are constant: zero spread.
	linear := []float64{10, 20, 30, 40, 50}
	assert.InDelta(t, 0.0, differencedStd(linear, 1), 1e-9)

	// d=0 is the plain sample std.
	assert.InDelta(t, 15.811388, differencedStd(linear, 0), 1e-5)

	// Degenerate after differencing away all observations.
	assert.Equal(t, 0.0, differencedStd([]float64{1, 2}, 1))
}
