package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleRunGate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("report_path", ""); p != "" {
		cfg.ReportPath = p
	}
	if overrides := request.GetString("thresholds", ""); overrides != "" {
		scores, metrics, err := contract.ParseThresholdOverrides(overrides)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid thresholds: %v", err)), nil
		}
		maps.Copy(cfg.ScoreThresholds, scores)
		maps.Copy(cfg.MetricThresholds, metrics)
	}

	result, err := core.GetGateResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("gate evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.mgr.GetHistoryStore().Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history load failed: %v", err)), nil
	}

	if limit := request.GetInt("limit", 0); limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHistoryStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.mgr.GetHistoryStore().Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history load failed: %v", err)), nil
	}

	stats, err := core.ComputeHistoryStats(entries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
