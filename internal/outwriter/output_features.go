package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/salecast/salecast/internal/contract"
	pq "github.com/salecast/salecast/internal/parquet"
	"github.com/salecast/salecast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// previewRows is how many trailing rows the text table shows.
// The full table belongs in CSV/JSON/parquet output.
const previewRows = 10

// PrintFeatureResults outputs the feature table, dispatching based on the output format configured.
func PrintFeatureResults(table *schema.FeatureTable, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForFeatures(table, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForFeatures(table, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForFeatures(table, cfg); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFeatureTable(table, cfg, fmtFloat, duration, w)
		}, "Wrote feature table")
	}
	return nil
}

// printJSONResultsForFeatures handles opening the file and calling the JSON writer.
func printJSONResultsForFeatures(table *schema.FeatureTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, FeatureJSONRows(table))
	}, "Wrote JSON features")
}

// printCSVResultsForFeatures handles opening the file and calling the CSV writer.
func printCSVResultsForFeatures(table *schema.FeatureTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForFeatures(csvWriter, table, cfg.Precision)
	}, "Wrote CSV features")
}

// printParquetResultsForFeatures writes the feature table as a parquet file.
// Parquet has no stdout form, so an explicit or derived file path is required.
func printParquetResultsForFeatures(table *schema.FeatureTable, cfg *contract.Config) error {
	outputPath := cfg.OutputFile
	if outputPath == "" {
		if err := contract.EnsureOutputDir(cfg.OutputDir); err != nil {
			return err
		}
		outputPath = cfg.ArtifactPath("engineered_features.parquet")
	}
	if err := pq.WriteFeatureTableParquet(table, outputPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote parquet features to %s\n", outputPath)
	return nil
}

// writeFeatureTable prints a trailing preview of the feature table.
func writeFeatureTable(table *schema.FeatureTable, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	t := tablewriter.NewWriter(writer)

	// Limit feature columns to what fits the terminal
	maxCols := GetMaxFeatureColumns(cfg)
	cols := table.Columns
	if len(cols) > maxCols {
		cols = cols[:maxCols]
	}

	headers := append([]string{"Date", "Sales"}, cols...)
	t.Header(headers)

	t.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	start := max(table.Len()-previewRows, 0)

	var data [][]string
	for _, row := range table.Rows[start:] {
		rec := []string{
			row.Date.Format(schema.DateFormat),
			fmtFloat(row.Sales),
		}
		for _, col := range cols {
			v := row.Values[col]
			if schema.IsNull(v) {
				rec = append(rec, "")
			} else {
				rec = append(rec, fmtFloat(v))
			}
		}
		data = append(data, rec)
	}

	if err := t.Bulk(data); err != nil {
		return err
	}
	if err := t.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing last %d of %d rows and %d of %d feature columns\n",
		len(data), table.Len(), len(cols), len(table.Columns)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Feature engineering completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
