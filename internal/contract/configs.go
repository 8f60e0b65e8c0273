package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/salecast/salecast/schema"
)

// Default values for configuration.
const (
	DefaultHorizon   = 365
	DefaultTestDays  = 73 // ~20% of a one-year history
	DefaultPrecision = 2
	MaxHorizon       = 3 * 365
	DefaultSeed      = 42
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// GBTParams holds the gradient-boosted tree hyperparameters.
type GBTParams struct {
	Trees        int
	MaxDepth     int
	LearningRate float64
	Subsample    float64
}

// DefaultGBTParams returns the stock GBT configuration.
func DefaultGBTParams() GBTParams {
	return GBTParams{Trees: 100, MaxDepth: 6, LearningRate: 0.05, Subsample: 0.8}
}

// ARIMAOrder is the (p,d,q) order of the classical statistical model.
type ARIMAOrder struct {
	P, D, Q int
}

// Config holds the runtime configuration for a pipeline run.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath string // Path to the sales history file
	OutputDir string // Directory for exported artifacts

	Horizon  int // Forecast length in days
	TestDays int // Held-out trailing window in days

	Windows      []int // Rolling window sizes in days
	Lags         []int // Lag offsets in days
	TrendWindows []int // OLS trend slope windows in days

	Models       []schema.ModelKind  // Models to fit, in order
	SelectMetric schema.SelectMetric // Metric that picks the best model
	ARIMA        ARIMAOrder
	GBT          GBTParams
	Seed         int64 // Seeds GBT subsampling and sample synthesis

	Holidays []schema.Holiday

	Output     schema.OutputMode
	OutputFile string // Optional path for table output ("" = stdout)
	Precision  int    // Decimal precision for numeric columns
	Width      int    // Terminal width override (0 = auto-detect)
	UseColors  bool   // Enable colored labels in table output
	Quiet      bool   // Suppress progress output

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputDir        string `mapstructure:"output-dir"`
	Horizon          int    `mapstructure:"horizon"`
	TestDays         int    `mapstructure:"test-days"`
	Windows          string `mapstructure:"windows"`
	Lags             string `mapstructure:"lags"`
	TrendWindows     string `mapstructure:"trend-windows"`
	Models           string `mapstructure:"models"`
	SelectMetric     string `mapstructure:"select-metric"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Quiet            bool   `mapstructure:"quiet"`
	Seed             int64  `mapstructure:"seed"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from runCmd.Flags() ---
	ARIMAOrderStr string `mapstructure:"arima-order"`
	GBTTrees      int    `mapstructure:"gbt-trees"`
	GBTDepth      int    `mapstructure:"gbt-depth"`
	GBTRate       float64 `mapstructure:"gbt-rate"`
	GBTSubsample  float64 `mapstructure:"gbt-subsample"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Windows = slices.Clone(c.Windows)
	clone.Lags = slices.Clone(c.Lags)
	clone.TrendWindows = slices.Clone(c.TrendWindows)
	clone.Models = slices.Clone(c.Models)
	clone.Holidays = slices.Clone(c.Holidays)
	return &clone
}

// ProcessAndValidate converts the raw input into a validated Config.
// It fails on the first invalid value rather than guessing.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = input.InputPathStr

	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = "outputs"
	}

	if input.Horizon <= 0 || input.Horizon > MaxHorizon {
		return fmt.Errorf("horizon must be in 1..%d, got %d", MaxHorizon, input.Horizon)
	}
	cfg.Horizon = input.Horizon

	if input.TestDays <= 0 {
		return fmt.Errorf("test-days must be positive, got %d", input.TestDays)
	}
	cfg.TestDays = input.TestDays

	var err error
	if cfg.Windows, err = parseIntList(input.Windows, schema.DefaultWindows); err != nil {
		return fmt.Errorf("invalid windows: %w", err)
	}
	if cfg.Lags, err = parseIntList(input.Lags, schema.DefaultLags); err != nil {
		return fmt.Errorf("invalid lags: %w", err)
	}
	if cfg.TrendWindows, err = parseIntList(input.TrendWindows, schema.DefaultTrendWindows); err != nil {
		return fmt.Errorf("invalid trend-windows: %w", err)
	}

	if cfg.Models, err = parseModels(input.Models); err != nil {
		return err
	}

	metric := schema.SelectMetric(strings.ToLower(input.SelectMetric))
	if metric == "" {
		metric = schema.SelectMAPE
	}
	if _, ok := schema.ValidSelectMetrics[metric]; !ok {
		return fmt.Errorf("invalid select-metric %q (valid: mape, mae, rmse, r2)", input.SelectMetric)
	}
	cfg.SelectMetric = metric

	output := schema.OutputMode(strings.ToLower(input.Output))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q (valid: text, csv, json, parquet)", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = 0
	}
	if cfg.Precision > 6 {
		cfg.Precision = 6
	}

	cfg.Width = input.Width
	cfg.Quiet = input.Quiet

	if input.Color != "" {
		useColors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid color setting: %w", err)
		}
		cfg.UseColors = useColors
	}

	cfg.Seed = input.Seed
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}

	if cfg.ARIMA, err = parseARIMAOrder(input.ARIMAOrderStr); err != nil {
		return err
	}

	cfg.GBT = DefaultGBTParams()
	if input.GBTTrees > 0 {
		cfg.GBT.Trees = input.GBTTrees
	}
	if input.GBTDepth > 0 {
		cfg.GBT.MaxDepth = input.GBTDepth
	}
	if input.GBTRate > 0 {
		cfg.GBT.LearningRate = input.GBTRate
	}
	if input.GBTSubsample > 0 && input.GBTSubsample <= 1 {
		cfg.GBT.Subsample = input.GBTSubsample
	}

	cfg.Holidays = schema.DefaultHolidays

	backend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend %q. Must be sqlite, mysql, postgresql, or none", input.HistoryBackend)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	return nil
}

// RevalidateModels applies model and metric overrides from an MCP request.
func RevalidateModels(cfg *Config, modelsStr, metricStr string) error {
	if modelsStr != "" {
		models, err := parseModels(modelsStr)
		if err != nil {
			return err
		}
		cfg.Models = models
	}
	if metricStr != "" {
		metric := schema.SelectMetric(strings.ToLower(metricStr))
		if _, ok := schema.ValidSelectMetrics[metric]; !ok {
			return fmt.Errorf("invalid select-metric %q (valid: mape, mae, rmse, r2)", metricStr)
		}
		cfg.SelectMetric = metric
	}
	return nil
}

// RevalidateFeatureParams applies window and lag overrides from an MCP request.
func RevalidateFeatureParams(cfg *Config, windowsStr, lagsStr string) error {
	if windowsStr != "" {
		windows, err := parseIntList(windowsStr, schema.DefaultWindows)
		if err != nil {
			return fmt.Errorf("invalid windows: %w", err)
		}
		cfg.Windows = windows
	}
	if lagsStr != "" {
		lags, err := parseIntList(lagsStr, schema.DefaultLags)
		if err != nil {
			return fmt.Errorf("invalid lags: %w", err)
		}
		cfg.Lags = lags
	}
	return nil
}

// ConfigParams returns the run parameters recorded alongside a run.
func (c *Config) ConfigParams() map[string]any {
	models := make([]string, len(c.Models))
	for i, m := range c.Models {
		models[i] = string(m)
	}
	return map[string]any{
		"input":         c.InputPath,
		"horizon":       c.Horizon,
		"test_days":     c.TestDays,
		"windows":       c.Windows,
		"lags":          c.Lags,
		"models":        models,
		"select_metric": string(c.SelectMetric),
		"seed":          c.Seed,
	}
}

// parseIntList parses a comma-separated list of positive integers,
// falling back to defaults when the input is empty.
func parseIntList(s string, defaults []int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return slices.Clone(defaults), nil
	}
	var out []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", part)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%d is not positive", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return slices.Clone(defaults), nil
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// parseModels parses the comma-separated model list, defaulting to all models.
func parseModels(s string) ([]schema.ModelKind, error) {
	if strings.TrimSpace(s) == "" {
		return slices.Clone(schema.AllModelKinds), nil
	}
	var out []schema.ModelKind
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		kind := schema.ModelKind(part)
		if _, ok := schema.ValidModelKinds[kind]; !ok {
			return nil, fmt.Errorf("unknown model %q (valid: decompose, arima, gbt)", part)
		}
		if !slices.Contains(out, kind) {
			out = append(out, kind)
		}
	}
	if len(out) == 0 {
		return slices.Clone(schema.AllModelKinds), nil
	}
	return out, nil
}

// parseARIMAOrder parses "p,d,q" into an ARIMAOrder, defaulting to (5,1,2).
func parseARIMAOrder(s string) (ARIMAOrder, error) {
	if strings.TrimSpace(s) == "" {
		return ARIMAOrder{P: 5, D: 1, Q: 2}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return ARIMAOrder{}, fmt.Errorf("arima-order must be p,d,q, got %q", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return ARIMAOrder{}, fmt.Errorf("arima-order component %q is not a non-negative integer", p)
		}
		vals[i] = n
	}
	return ARIMAOrder{P: vals[0], D: vals[1], Q: vals[2]}, nil
}

// EnsureOutputDir creates the output directory if needed.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}
	return nil
}

// ArtifactPath joins the output directory with an artifact file name.
func (c *Config) ArtifactPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}
