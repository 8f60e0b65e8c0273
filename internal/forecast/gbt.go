package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/internal/features"
	"github.com/salecast/salecast/schema"
)

// calendarFeatureNames is the fixed calendar portion of the feature
// vector, preceding the windowed columns.
var calendarFeatureNames = []string{
	"year", "month", "day", "day_of_week", "day_of_year", "quarter",
	"week_of_year", "is_weekend", "is_month_start", "is_month_end",
	"is_quarter_start", "is_quarter_end", "is_year_start", "is_year_end",
}

// gbt is a gradient-boosted ensemble of regression trees over the
// engineered feature table. Future forecasting is recursive: each
// predicted day is appended to the series and the next day's features
// are derived from it.
type gbt struct {
	cfg *contract.Config

	cols     []string
	trees    []*treeNode
	baseline float64
	sigma    float64
	history  *schema.Series
	snapshot *features.Snapshot
	fitted   bool
}

func newGBT(cfg *contract.Config) *gbt {
	return &gbt{cfg: cfg}
}

func (g *gbt) Kind() schema.ModelKind {
	return schema.GBTModel
}

// Fit trains the boosted ensemble. Rows with any null feature are
// dropped from training; they never train as zeros.
func (g *gbt) Fit(data *contract.TrainingData) error {
	if data.Features == nil || data.Features.Len() == 0 {
		return &contract.ModelFitError{
			Model: schema.GBTModel,
			Cause: fmt.Errorf("gradient boosting requires the engineered feature table"),
		}
	}

	table := data.Features
	var x [][]float64
	var y []float64
	for i := range table.Rows {
		vec := featureVector(&table.Rows[i], table.Columns)
		if hasNull(vec) {
			continue
		}
		x = append(x, vec)
		y = append(y, table.Rows[i].Sales)
	}
	if len(x) < 30 {
		return &contract.ModelFitError{
			Model: schema.GBTModel,
			Cause: fmt.Errorf("only %d complete training rows after dropping null features", len(x)),
		}
	}

	g.cols = slices.Clone(table.Columns)
	g.boost(x, y)

	var sqSum float64
	for i := range x {
		r := y[i] - g.score(x[i])
		sqSum += r * r
	}
	g.sigma = math.Sqrt(sqSum / float64(len(x)))

	g.history = &schema.Series{
		Dates:  slices.Clone(data.Series.Dates),
		Values: slices.Clone(data.Series.Values),
	}
	g.snapshot = features.NewSnapshot(table, g.cfg)
	g.fitted = true
	return nil
}

// Predict rolls the model forward one day at a time. The unknown
// current-day value is stood in by the previous day's value while the
// row's features are derived, then replaced by the prediction.
func (g *gbt) Predict(horizon int) ([]schema.ForecastPoint, error) {
	if !g.fitted {
		return nil, fmt.Errorf("gbt model is not fitted")
	}

	values := slices.Clone(g.history.Values)
	last := g.history.Last()
	margin := confidenceZ * g.sigma

	points := make([]schema.ForecastPoint, horizon)
	for step := 1; step <= horizon; step++ {
		date := last.AddDate(0, 0, step)
		values = append(values, values[len(values)-1])

		row := g.snapshot.Row(values, date)
		vec := featureVector(&row, g.cols)
		fillNull(vec)

		value := clipNonNegative(g.score(vec))
		values[len(values)-1] = value
		points[step-1] = schema.ForecastPoint{
			Date:  date,
			Value: value,
			Lower: clipNonNegative(value - margin),
			Upper: value + margin,
		}
	}
	return points, nil
}

// boost fits the ensemble against successive residuals, subsampling
// rows per tree under the configured seed.
func (g *gbt) boost(x [][]float64, y []float64) {
	params := g.cfg.GBT
	rng := rand.New(rand.NewSource(g.cfg.Seed))

	g.baseline = 0
	for _, v := range y {
		g.baseline += v
	}
	g.baseline /= float64(len(y))

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = g.baseline
	}

	residual := make([]float64, len(y))
	g.trees = make([]*treeNode, 0, params.Trees)
	for t := 0; t < params.Trees; t++ {
		for i := range y {
			residual[i] = y[i] - pred[i]
		}

		tree := buildTree(x, residual, sampleRows(len(y), params.Subsample, rng), params.MaxDepth)
		g.trees = append(g.trees, tree)

		for i := range pred {
			pred[i] += params.LearningRate * tree.predict(x[i])
		}
	}
}

// score evaluates the full ensemble for one feature vector.
func (g *gbt) score(vec []float64) float64 {
	out := g.baseline
	for _, tree := range g.trees {
		out += g.cfg.GBT.LearningRate * tree.predict(vec)
	}
	return out
}

// sampleRows picks a random fraction of row indices without replacement.
func sampleRows(n int, fraction float64, rng *rand.Rand) []int {
	k := int(fraction * float64(n))
	if k < 2 {
		k = 2
	}
	if k > n {
		k = n
	}
	perm := rng.Perm(n)
	return perm[:k]
}

// featureVector flattens a feature row into the model's input layout:
// calendar fields first, then the windowed columns in table order.
func featureVector(row *schema.FeatureRow, cols []string) []float64 {
	vec := make([]float64, 0, len(calendarFeatureNames)+len(cols))
	vec = append(vec,
		float64(row.Year), float64(row.Month), float64(row.Day),
		float64(row.DayOfWeek), float64(row.DayOfYear), float64(row.Quarter),
		float64(row.WeekOfYear),
		boolFeature(row.IsWeekend), boolFeature(row.IsMonthStart),
		boolFeature(row.IsMonthEnd), boolFeature(row.IsQuarterStart),
		boolFeature(row.IsQuarterEnd), boolFeature(row.IsYearStart),
		boolFeature(row.IsYearEnd),
	)
	for _, col := range cols {
		vec = append(vec, row.Values[col])
	}
	return vec
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func hasNull(vec []float64) bool {
	for _, v := range vec {
		if schema.IsNull(v) {
			return true
		}
	}
	return false
}

// fillNull zeroes null entries. Only used at prediction time, where a
// row cannot be dropped; training rows with nulls are dropped instead.
func fillNull(vec []float64) {
	for i, v := range vec {
		if schema.IsNull(v) {
			vec[i] = 0
		}
	}
}
