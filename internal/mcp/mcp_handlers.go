package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/salecast/salecast/core"
	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/internal/outwriter"
	"github.com/salecast/salecast/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// requestConfig clones the base config with the request's shared overrides.
// Progress output is always suppressed; stdio carries the protocol.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.Quiet = true

	dataFile := request.GetString("data_file", "")
	if dataFile == "" {
		return nil, fmt.Errorf("data_file is required")
	}
	cfg.InputPath = dataFile

	if err := contract.RevalidateModels(cfg, request.GetString("models", ""), request.GetString("select_metric", "")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (h *toolHandler) handleRunForecast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid forecast parameters: %v", err)), nil
	}
	if horizon := request.GetInt("horizon", 0); horizon > 0 {
		if horizon > contract.MaxHorizon {
			return mcp.NewToolResultError(fmt.Sprintf("horizon must be at most %d", contract.MaxHorizon)), nil
		}
		cfg.Horizon = horizon
	}
	if testDays := request.GetInt("test_days", 0); testDays > 0 {
		cfg.TestDays = testDays
	}

	result, report, err := core.GetForecastResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	payload := struct {
		Summary  *schema.SummaryReport        `json:"summary"`
		Models   []schema.EnrichedModelResult `json:"models"`
		Forecast []schema.ForecastPoint       `json:"forecast"`
	}{
		Summary:  report,
		Models:   outwriter.RankModelResults(result.Results, cfg.SelectMetric, result.Best),
		Forecast: result.Forecast,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEngineerFeatures(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid feature parameters: %v", err)), nil
	}
	if err := contract.RevalidateFeatureParams(cfg, request.GetString("windows", ""), request.GetString("lags", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid feature parameters: %v", err)), nil
	}

	table, err := core.GetFeatureTable(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("feature engineering failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(outwriter.FeatureJSONRows(table), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}

	result, _, err := core.GetForecastResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	payload := struct {
		SelectMetric schema.SelectMetric          `json:"select_metric"`
		BestModel    schema.ModelKind             `json:"best_model"`
		Models       []schema.EnrichedModelResult `json:"models"`
	}{
		SelectMetric: cfg.SelectMetric,
		BestModel:    result.Best,
		Models:       outwriter.RankModelResults(result.Results, cfg.SelectMetric, result.Best),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
