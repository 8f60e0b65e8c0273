package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// fourierOrder is the number of yearly sine/cosine pairs in the design.
const fourierOrder = 3

// weeklyOrder is the number of weekly sine/cosine pairs in the design.
const weeklyOrder = 2

// yearDays is the mean tropical year length used for the seasonal period.
const yearDays = 365.25

// weekDays is the weekly seasonal period.
const weekDays = 7

// decompose is an additive structural model: linear trend + weekly and
// yearly Fourier seasonality + per-holiday effects, fitted by ordinary
// least squares on the training series. Intervals come from the residual
// spread and are constant across the horizon.
type decompose struct {
	holidays []schema.Holiday

	coef   []float64
	sigma  float64
	n      int
	last   time.Time
	fitted bool
}

func newDecompose(holidays []schema.Holiday) *decompose {
	return &decompose{holidays: holidays}
}

func (d *decompose) Kind() schema.ModelKind {
	return schema.DecomposeModel
}

// Fit solves the least-squares problem over the full training series.
func (d *decompose) Fit(data *contract.TrainingData) error {
	series := data.Series
	n := series.Len()
	if n < 2*d.columns() {
		return &contract.ModelFitError{
			Model: schema.DecomposeModel,
			Cause: fmt.Errorf("need at least %d observations, got %d", 2*d.columns(), n),
		}
	}

	design := make([][]float64, n)
	for i := 0; i < n; i++ {
		design[i] = d.designRow(float64(i), series.Dates[i])
	}

	coef, err := solveLeastSquares(design, series.Values)
	if err != nil {
		return &contract.ModelFitError{Model: schema.DecomposeModel, Cause: err}
	}

	var sqSum float64
	for i := 0; i < n; i++ {
		r := series.Values[i] - dot(coef, design[i])
		sqSum += r * r
	}

	d.coef = coef
	d.sigma = math.Sqrt(sqSum / float64(n-len(coef)))
	d.n = n
	d.last = series.Last()
	d.fitted = true
	return nil
}

// Predict extends the fitted trend and seasonality past the last
// training date.
func (d *decompose) Predict(horizon int) ([]schema.ForecastPoint, error) {
	if !d.fitted {
		return nil, fmt.Errorf("decompose model is not fitted")
	}

	points := make([]schema.ForecastPoint, horizon)
	margin := confidenceZ * d.sigma
	for step := 1; step <= horizon; step++ {
		date := d.last.AddDate(0, 0, step)
		value := dot(d.coef, d.designRow(float64(d.n-1+step), date))
		points[step-1] = schema.ForecastPoint{
			Date:  date,
			Value: clipNonNegative(value),
			Lower: clipNonNegative(value - margin),
			Upper: clipNonNegative(value + margin),
		}
	}
	return points, nil
}

// columns is the width of the design matrix.
func (d *decompose) columns() int {
	return 2 + 2*fourierOrder + 2*weeklyOrder + len(d.holidays)
}

// designRow builds one design-matrix row: intercept, trend index, Fourier
// pairs on the day-of-year and day-of-week angles, and one indicator per
// holiday.
func (d *decompose) designRow(t float64, date time.Time) []float64 {
	row := make([]float64, 0, d.columns())
	row = append(row, 1, t)

	angle := 2 * math.Pi * float64(date.YearDay()) / yearDays
	for k := 1; k <= fourierOrder; k++ {
		row = append(row, math.Sin(float64(k)*angle), math.Cos(float64(k)*angle))
	}

	weekAngle := 2 * math.Pi * float64(schema.DayOfWeekMonday(date)) / weekDays
	for k := 1; k <= weeklyOrder; k++ {
		row = append(row, math.Sin(float64(k)*weekAngle), math.Cos(float64(k)*weekAngle))
	}

	for _, h := range d.holidays {
		if int(date.Month()) == h.Month && date.Day() == h.Day {
			row = append(row, 1)
		} else {
			row = append(row, 0)
		}
	}
	return row
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// solveLeastSquares solves min ||Xb - y|| via the normal equations with
// Gaussian elimination and partial pivoting. X must have full column
// rank; a singular system is an error.
func solveLeastSquares(x [][]float64, y []float64) ([]float64, error) {
	cols := len(x[0])

	// Build XtX and Xty.
	a := make([][]float64, cols)
	b := make([]float64, cols)
	for i := 0; i < cols; i++ {
		a[i] = make([]float64, cols)
	}
	for r := range x {
		for i := 0; i < cols; i++ {
			b[i] += x[r][i] * y[r]
			for j := i; j < cols; j++ {
				a[i][j] += x[r][i] * x[r][j]
			}
		}
	}
	for i := 1; i < cols; i++ {
		for j := 0; j < i; j++ {
			a[i][j] = a[j][i]
		}
	}

	// Forward elimination with partial pivoting.
	for col := 0; col < cols; col++ {
		pivot := col
		for r := col + 1; r < cols; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("design matrix is singular at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < cols; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < cols; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	// Back substitution.
	coef := make([]float64, cols)
	for i := cols - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < cols; j++ {
			sum -= a[i][j] * coef[j]
		}
		coef[i] = sum / a[i][i]
	}
	return coef, nil
}
