package contract

import (
	"fmt"

	"github.com/salecast/salecast/schema"
)

// SchemaError indicates the input file has no identifiable date or
// sales column.
type SchemaError struct {
	Path    string   // Input file path
	Missing string   // "date" or "sales"
	Columns []string // Column names that were inspected
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("no %s column identified in %s (columns: %v)", e.Missing, e.Path, e.Columns)
}

// DataQualityError indicates a value in an identified column could not be
// used: an unparseable date or a non-numeric sales value. Values are never
// silently coerced.
type DataQualityError struct {
	Column string // Offending column name
	Row    int    // 1-based data row (excluding header)
	Value  string // Raw cell content
	Cause  error
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("bad value %q in column %q at row %d: %v", e.Value, e.Column, e.Row, e.Cause)
}

func (e *DataQualityError) Unwrap() error {
	return e.Cause
}

// ModelFitError indicates one forecasting model failed. The pipeline
// recovers by skipping that model.
type ModelFitError struct {
	Model schema.ModelKind
	Cause error
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("model %s failed: %v", e.Model, e.Cause)
}

func (e *ModelFitError) Unwrap() error {
	return e.Cause
}

// PipelineError is fatal: every model failed, or an output artifact could
// not be written.
type PipelineError struct {
	Stage string // "fit", "forecast" or "export"
	Cause error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %v", e.Stage, e.Cause)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}
