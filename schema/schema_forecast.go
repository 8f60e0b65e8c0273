package schema

import "time"

// ForecastPoint is a single predicted observation with its native
// uncertainty bounds.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
}

// EvalMetrics holds standard regression metrics computed on the
// held-out test window.
type EvalMetrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	MAPE float64 `json:"mape"` // Fraction, not percent (0.12 = 12%)
	R2   float64 `json:"r2"`
}

// MetricFor returns the metric value selected by m.
func (e EvalMetrics) MetricFor(m SelectMetric) float64 {
	switch m {
	case SelectMAE:
		return e.MAE
	case SelectRMSE:
		return e.RMSE
	case SelectR2:
		return e.R2
	default:
		return e.MAPE
	}
}

// ModelResult is the outcome of fitting and evaluating one model.
// A failed model carries its error string and no predictions.
type ModelResult struct {
	Model           ModelKind   `json:"model"`
	Metrics         EvalMetrics `json:"metrics"`
	TestPredictions []float64   `json:"-"`
	FitDuration     time.Duration `json:"fit_duration_ns"`
	Err             string      `json:"error,omitempty"`
}

// Failed reports whether the model could not be fitted or evaluated.
func (r ModelResult) Failed() bool {
	return r.Err != ""
}

// PipelineResult is everything one pipeline run produces in memory.
type PipelineResult struct {
	Results   []ModelResult   `json:"results"`
	Best      ModelKind       `json:"best_model"`
	Forecast  []ForecastPoint `json:"-"`
	Combined  []CombinedRow   `json:"-"`
	TestDates []time.Time     `json:"-"`
	TestActual []float64      `json:"-"`
	Horizon   int             `json:"horizon"`
	TrainRows int             `json:"train_rows"`
	TestRows  int             `json:"test_rows"`
}

// SucceededResults returns the results for models that fitted cleanly.
func (p *PipelineResult) SucceededResults() []ModelResult {
	out := make([]ModelResult, 0, len(p.Results))
	for _, r := range p.Results {
		if !r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// BestResult returns the result for the selected best model.
// The boolean is false when every model failed.
func (p *PipelineResult) BestResult() (ModelResult, bool) {
	for _, r := range p.Results {
		if r.Model == p.Best && !r.Failed() {
			return r, true
		}
	}
	return ModelResult{}, false
}
