package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ModelKind represents a forecasting model.
	ModelKind string

	// DataType labels a combined-table row as history or forecast.
	DataType string

	// SelectMetric represents the metric used to pick the best model.
	SelectMetric string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All forecasting models supported.
const (
	DecomposeModel ModelKind = "decompose" // additive trend + seasonality decomposition
	ARIMAModel     ModelKind = "arima"     // classical statistical model
	GBTModel       ModelKind = "gbt"       // gradient-boosted regression trees
)

// Row labels for the combined historical+forecast table.
const (
	HistoricalData DataType = "Historical"
	ForecastData   DataType = "Forecast"
)

// All selection metrics supported.
const (
	SelectMAPE SelectMetric = "mape" // default
	SelectMAE  SelectMetric = "mae"
	SelectRMSE SelectMetric = "rmse"
	SelectR2   SelectMetric = "r2"
)

// All run-history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllModelKinds returns a list of all supported models in fit order.
var AllModelKinds = []ModelKind{DecomposeModel, ARIMAModel, GBTModel}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidModelKinds lists all valid models.
var ValidModelKinds = map[ModelKind]struct{}{
	DecomposeModel: {},
	ARIMAModel:     {},
	GBTModel:       {},
}

// ValidSelectMetrics lists all valid selection metrics.
var ValidSelectMetrics = map[SelectMetric]struct{}{
	SelectMAPE: {},
	SelectMAE:  {},
	SelectRMSE: {},
	SelectR2:   {},
}

// ValidDatabaseBackends lists all valid run-history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Default feature engineering parameters.
var (
	// DefaultWindows are the trailing window sizes, in days, for
	// rolling mean/std/min/max features.
	DefaultWindows = []int{7, 14, 30, 90, 365}

	// DefaultLags are the lag offsets, in days, for lag features.
	DefaultLags = []int{1, 7, 14, 30, 365}

	// DefaultTrendWindows are the trailing window sizes for OLS trend slopes.
	DefaultTrendWindows = []int{7, 30, 90}

	// DefaultDiffs are the offsets for difference features.
	DefaultDiffs = []int{1, 7, 30}

	// DefaultPctChanges are the offsets for percentage-change features.
	DefaultPctChanges = []int{1, 7}
)

// Holiday is a fixed calendar date that repeats every year.
type Holiday struct {
	Name  string
	Month int
	Day   int
}

// DefaultHolidays is the fixed retail holiday calendar. Flags are expanded
// by HolidayWindowDays on both sides of each date.
var DefaultHolidays = []Holiday{
	{Name: "new_year", Month: 1, Day: 1},
	{Name: "valentine_day", Month: 2, Day: 14},
	{Name: "independence_day", Month: 7, Day: 4},
	{Name: "black_friday", Month: 11, Day: 27},
	{Name: "cyber_monday", Month: 11, Day: 30},
	{Name: "christmas", Month: 12, Day: 25},
	{Name: "boxing_day", Month: 12, Day: 26},
}

// HolidayWindowDays is the +/- day expansion around each holiday date.
const HolidayWindowDays = 3

// DateFormat is the canonical calendar-day representation in all outputs.
const DateFormat = "2006-01-02"
