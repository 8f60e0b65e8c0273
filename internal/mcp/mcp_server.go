// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/salecast/salecast/internal/contract"
)

// NewMCPServer initializes and configures the Salecast MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Salecast Forecasting Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: run_forecast ---
	s.AddTool(mcp.NewTool("run_forecast",
		mcp.WithDescription("Run the full sales forecasting pipeline on a history file and return the forecast summary."),
		mcp.WithString("data_file", mcp.Description("Path to the sales history file (CSV, Excel or Parquet)."), mcp.Required()),
		mcp.WithNumber("horizon", mcp.Description("Forecast length in days. Defaults to 365.")),
		mcp.WithNumber("test_days", mcp.Description("Held-out trailing window in days. Defaults to 73.")),
		mcp.WithString("models", mcp.Description("Comma-separated models to fit (decompose, arima, gbt). Defaults to all.")),
		mcp.WithString("select_metric", mcp.Description("Metric that picks the best model."), mcp.Enum("mape", "mae", "rmse", "r2")),
	), h.handleRunForecast)

	// --- 2. Tool: engineer_features ---
	s.AddTool(mcp.NewTool("engineer_features",
		mcp.WithDescription("Load a sales history file and return the engineered feature table."),
		mcp.WithString("data_file", mcp.Description("Path to the sales history file (CSV, Excel or Parquet)."), mcp.Required()),
		mcp.WithString("windows", mcp.Description("Comma-separated rolling window sizes in days.")),
		mcp.WithString("lags", mcp.Description("Comma-separated lag offsets in days.")),
	), h.handleEngineerFeatures)

	// --- 3. Tool: compare_models ---
	s.AddTool(mcp.NewTool("compare_models",
		mcp.WithDescription("Fit and evaluate the forecasting models on a history file and return their ranked metrics."),
		mcp.WithString("data_file", mcp.Description("Path to the sales history file (CSV, Excel or Parquet)."), mcp.Required()),
		mcp.WithString("models", mcp.Description("Comma-separated models to compare. Defaults to all.")),
		mcp.WithString("select_metric", mcp.Description("Metric that ranks the models."), mcp.Enum("mape", "mae", "rmse", "r2")),
	), h.handleCompareModels)

	return s
}

// StartMCPServer starts the Salecast MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
