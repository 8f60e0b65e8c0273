package schema

import "time"

// RunRecord represents a row from the salecast_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	InputRows     int32
	FeatureRows   int32
	ForecastRows  int32
	BestModel     *string
	ConfigParams  *string
}

// ModelScoreRecord represents a row from the salecast_model_scores table.
type ModelScoreRecord struct {
	RunID       int64
	Model       string
	MAE         float64
	RMSE        float64
	MAPE        float64
	R2          float64
	Selected    bool
	FitDurationMs int32
	FitError    *string
}
