package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintForecastResults outputs the pipeline results, dispatching based on the output format configured.
func PrintForecastResults(result *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForForecast(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForForecast(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote forecast table")
	}
	return nil
}

// printJSONResultsForForecast handles opening the file and calling the JSON writer.
func printJSONResultsForForecast(result *schema.PipelineResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForForecast(w, result, cfg.SelectMetric)
	}, "Wrote JSON forecast results")
}

// printCSVResultsForForecast handles opening the file and calling the CSV writer.
func printCSVResultsForForecast(result *schema.PipelineResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForForecast(csvWriter, result.Combined, fmtFloat)
	}, "Wrote CSV forecast results")
}

// writeForecastTable prints the model comparison table plus a forecast summary.
func writeForecastTable(result *schema.PipelineResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Model", "MAE", "RMSE", "MAPE", "R2", "Label", "Best"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	ranked := schema.EnrichModelResults(sortResultsForRanking(result.Results, cfg.SelectMetric), result.Best)
	var data [][]string
	for _, r := range ranked {
		label := r.Label
		if r.Failed() {
			label = "failed: " + r.Err
		} else if cfg.UseColors {
			label = contract.GetColorLabel(r.Metrics.MAPE)
		}
		bestMark := ""
		if r.Best {
			bestMark = "*"
		}
		row := []string{
			strconv.Itoa(r.Rank),
			string(r.Model),
			fmtFloat(r.Metrics.MAE),
			fmtFloat(r.Metrics.RMSE),
			fmtFloat(r.Metrics.MAPE * 100), // Displayed as percent
			fmtFloat(r.Metrics.R2),
			label,
			bestMark,
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Summary stats
	forecastTotal := 0.0
	for _, p := range result.Forecast {
		forecastTotal += p.Value
	}
	if _, err := fmt.Fprintf(writer, "Best model: %s (by %s). Forecast: %d days, projected total %s\n",
		result.Best, cfg.SelectMetric, len(result.Forecast), fmtFloat(forecastTotal)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Pipeline completed in %v (%d train rows, %d test rows)\n",
		duration, result.TrainRows, result.TestRows); err != nil {
		return err
	}
	return nil
}
