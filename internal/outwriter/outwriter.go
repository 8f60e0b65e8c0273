// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteForecast prints pipeline results using the configured output format.
func (ow *OutWriter) WriteForecast(result *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	return PrintForecastResults(result, cfg, duration)
}

// WriteFeatures prints the engineered feature table using the configured output format.
func (ow *OutWriter) WriteFeatures(table *schema.FeatureTable, cfg *contract.Config, duration time.Duration) error {
	return PrintFeatureResults(table, cfg, duration)
}

// WriteModels prints model and metric definitions using the configured output format.
func (ow *OutWriter) WriteModels(cfg *contract.Config) error {
	return PrintModelDefinitions(cfg)
}

// WriteArtifacts exports the full BI artifact set to the output directory.
func (ow *OutWriter) WriteArtifacts(result *schema.PipelineResult, table *schema.FeatureTable, report *schema.SummaryReport, cfg *contract.Config) error {
	return ExportArtifacts(result, table, report, cfg)
}
