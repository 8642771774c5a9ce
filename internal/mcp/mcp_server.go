// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/perfgate/perfgate/internal/contract"
)

// NewMCPServer initializes and configures the perfgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Performance Gate Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: run_gate ---
	s.AddTool(mcp.NewTool("run_gate",
		mcp.WithDescription("Evaluate a Lighthouse report against the configured score and metric thresholds."),
		mcp.WithString("report_path", mcp.Description("Path to the Lighthouse JSON report (defaults to lighthouse-report.json).")),
		mcp.WithString("thresholds", mcp.Description("Comma-separated threshold overrides, e.g. 'performance:95,largest-contentful-paint:2000'.")),
	), h.handleRunGate)

	// --- 2. Tool: get_history ---
	s.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Return the persisted performance history log, oldest entry first."),
		mcp.WithNumber("limit", mcp.Description("Return only the most recent N entries.")),
	), h.handleGetHistory)

	// --- 3. Tool: get_history_stats ---
	s.AddTool(mcp.NewTool("get_history_stats",
		mcp.WithDescription("Return aggregate statistics (mean, stddev, min, max, latest, delta) over the history log."),
	), h.handleGetHistoryStats)

	return s
}

// StartMCPServer starts the perfgate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
