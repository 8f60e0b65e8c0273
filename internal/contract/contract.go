// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/salecast/salecast/schema"
)

// TrainingData bundles everything a model may train on. Series and
// Features cover the same date range row for row; Features may be nil for
// models that only consume the raw series.
type TrainingData struct {
	Series   *schema.Series
	Features *schema.FeatureTable
}

// Forecaster is the common capability all forecasting models expose.
// Fit trains on historical data; Predict extends the fitted history by
// horizon days, returning one point per day with native uncertainty bounds.
type Forecaster interface {
	// Kind identifies the model.
	Kind() schema.ModelKind

	// Fit trains the model on the given data. A fitted model may be
	// refitted with new data; the previous fit is discarded.
	Fit(data *TrainingData) error

	// Predict returns horizon consecutive daily points starting the day
	// after the last fitted date. It fails if the model is not fitted.
	Predict(horizon int) ([]schema.ForecastPoint, error)
}

// RunStore defines the interface for tracking pipeline runs and model scores.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, inputRows, featureRows, forecastRows int, bestModel string) error

	// RecordModelScore stores evaluation metrics for one model in a run.
	RecordModelScore(runID int64, score schema.ModelScoreRecord) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns retrieves every recorded run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllModelScores retrieves every recorded model score.
	GetAllModelScores() ([]schema.ModelScoreRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the run-history store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}
