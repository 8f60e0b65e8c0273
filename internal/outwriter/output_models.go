package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// modelDefinition describes one forecasting model for display.
type modelDefinition struct {
	Name     string   `json:"name"`
	Purpose  string   `json:"purpose"`
	Params   []string `json:"parameters"`
	Interval string   `json:"interval"`
}

// metricDefinition describes one evaluation metric for display.
type metricDefinition struct {
	Name      string `json:"name"`
	Meaning   string `json:"meaning"`
	Direction string `json:"direction"`
}

// modelsRenderModel is the complete render model for the models command.
type modelsRenderModel struct {
	Title   string             `json:"title"`
	Models  []modelDefinition  `json:"models"`
	Metrics []metricDefinition `json:"metrics"`
}

// PrintModelDefinitions displays the formal definitions of all models and metrics.
// This is a static display that does not require input data.
func PrintModelDefinitions(cfg *contract.Config) error {
	renderModel := buildModelsRenderModel(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"model", "purpose", "parameters", "interval"}, func(cw *csv.Writer) error {
				for _, m := range renderModel.Models {
					if err := cw.Write([]string{m.Name, m.Purpose, strings.Join(m.Params, "; "), m.Interval}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printModelsText(w, renderModel)
		}, "Wrote text")
	}
}

// printModelsText displays model definitions in human-readable text format.
func printModelsText(w io.Writer, renderModel *modelsRenderModel) error {
	if _, err := fmt.Fprintf(w, "%s\n", renderModel.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(renderModel.Title))); err != nil {
		return err
	}

	for _, m := range renderModel.Models {
		if _, err := fmt.Fprintf(w, "%s: %s\n", strings.ToUpper(m.Name), m.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Parameters: %s\n", strings.Join(m.Params, ", ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Interval: %s\n\n", m.Interval); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Evaluation metrics\n"); err != nil {
		return err
	}
	for _, m := range renderModel.Metrics {
		if _, err := fmt.Fprintf(w, "   %s: %s (%s)\n", strings.ToUpper(m.Name), m.Meaning, m.Direction); err != nil {
			return err
		}
	}
	return nil
}

// buildModelsRenderModel constructs the render model from the active configuration.
func buildModelsRenderModel(cfg *contract.Config) *modelsRenderModel {
	return &modelsRenderModel{
		Title: "Salecast Forecasting Models",
		Models: []modelDefinition{
			{
				Name:    string(schema.DecomposeModel),
				Purpose: "Additive decomposition: linear trend + Fourier seasonality + holiday effects",
				Params: []string{
					"least squares fit",
					"yearly Fourier order 3",
					fmt.Sprintf("%d holidays", len(cfg.Holidays)),
				},
				Interval: "constant 95% band from residual spread",
			},
			{
				Name:    string(schema.ARIMAModel),
				Purpose: "Classical autoregressive integrated moving average",
				Params: []string{
					fmt.Sprintf("order (%d,%d,%d)", cfg.ARIMA.P, cfg.ARIMA.D, cfg.ARIMA.Q),
				},
				Interval: "95% band widening with the forecast step",
			},
			{
				Name:    string(schema.GBTModel),
				Purpose: "Gradient-boosted regression trees over the engineered feature matrix",
				Params: []string{
					fmt.Sprintf("%d trees", cfg.GBT.Trees),
					fmt.Sprintf("depth %d", cfg.GBT.MaxDepth),
					fmt.Sprintf("rate %.2f", cfg.GBT.LearningRate),
					fmt.Sprintf("subsample %.2f", cfg.GBT.Subsample),
					fmt.Sprintf("seed %d", cfg.Seed),
				},
				Interval: "constant 95% band from training residual spread",
			},
		},
		Metrics: []metricDefinition{
			{Name: string(schema.SelectMAE), Meaning: "mean absolute error", Direction: "lower is better"},
			{Name: string(schema.SelectRMSE), Meaning: "root mean squared error", Direction: "lower is better"},
			{Name: string(schema.SelectMAPE), Meaning: "mean absolute percentage error", Direction: "lower is better, default selector"},
			{Name: string(schema.SelectR2), Meaning: "coefficient of determination", Direction: "higher is better"},
		},
	}
}
