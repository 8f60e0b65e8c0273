package forecast

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sartorproj/goarima/arima"
	"github.com/sartorproj/goarima/timeseries"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// arimaEngine is the slice of the fitted estimator this package needs.
type arimaEngine interface {
	Fit(*timeseries.Series) error
	Predict(int) ([]float64, error)
}

// arimaModel wraps the classical ARIMA estimator. Interval width is the
// spread of the order-d differenced series scaled by the square root of
// the step, matching the growth of random-walk uncertainty.
type arimaModel struct {
	order contract.ARIMAOrder

	engine arimaEngine
	sigma  float64
	last   time.Time
	fitted bool
}

func newARIMA(order contract.ARIMAOrder) *arimaModel {
	return &arimaModel{order: order}
}

func (m *arimaModel) Kind() schema.ModelKind {
	return schema.ARIMAModel
}

func (m *arimaModel) Fit(data *contract.TrainingData) error {
	series := data.Series
	minRows := m.order.P + m.order.D + m.order.Q + 10
	if series.Len() < minRows {
		return &contract.ModelFitError{
			Model: schema.ARIMAModel,
			Cause: fmt.Errorf("need at least %d observations, got %d", minRows, series.Len()),
		}
	}

	engine := arima.New(m.order.P, m.order.D, m.order.Q)
	if err := engine.Fit(&timeseries.Series{Values: slices.Clone(series.Values)}); err != nil {
		return &contract.ModelFitError{Model: schema.ARIMAModel, Cause: err}
	}

	m.engine = engine
	m.sigma = differencedStd(series.Values, m.order.D)
	m.last = series.Last()
	m.fitted = true
	return nil
}

func (m *arimaModel) Predict(horizon int) ([]schema.ForecastPoint, error) {
	if !m.fitted {
		return nil, fmt.Errorf("arima model is not fitted")
	}

	values, err := m.engine.Predict(horizon)
	if err != nil {
		return nil, fmt.Errorf("arima predict: %w", err)
	}
	if len(values) < horizon {
		return nil, fmt.Errorf("arima predict returned %d of %d points", len(values), horizon)
	}

	points := make([]schema.ForecastPoint, horizon)
	for step := 1; step <= horizon; step++ {
		value := clipNonNegative(values[step-1])
		margin := confidenceZ * m.sigma * math.Sqrt(float64(step))
		points[step-1] = schema.ForecastPoint{
			Date:  m.last.AddDate(0, 0, step),
			Value: value,
			Lower: clipNonNegative(value - margin),
			Upper: value + margin,
		}
	}
	return points, nil
}

// differencedStd is the sample std of the series differenced d times.
func differencedStd(values []float64, d int) float64 {
	diffed := slices.Clone(values)
	for i := 0; i < d; i++ {
		next := make([]float64, 0, len(diffed)-1)
		for j := 1; j < len(diffed); j++ {
			next = append(next, diffed[j]-diffed[j-1])
		}
		diffed = next
	}
	if len(diffed) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range diffed {
		mean += v
	}
	mean /= float64(len(diffed))

	var sqSum float64
	for _, v := range diffed {
		d := v - mean
		sqSum += d * d
	}
	return math.Sqrt(sqSum / float64(len(diffed)-1))
}
