// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the libstats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Library Borrowing Statistics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_annual_counts ---
	s.AddTool(mcp.NewTool("get_annual_counts",
		mcp.WithDescription("Get the number of books borrowed per year, one entry per year from 2020 to 2025."),
	), h.handleGetAnnualCounts)

	// --- 2. Tool: get_monthly_counts ---
	s.AddTool(mcp.NewTool("get_monthly_counts",
		mcp.WithDescription("Get the number of books borrowed per month of a year, always 12 entries."),
		mcp.WithNumber("year", mcp.Description("The year to report, between 2020 and 2025."), mcp.Required()),
	), h.handleGetMonthlyCounts)

	// --- 3. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Get both the annual and the monthly series, as shown on the dashboard."),
		mcp.WithNumber("year", mcp.Description("The selected year for the monthly series (defaults to the current year).")),
	), h.handleGetDashboard)

	// --- 4. Tool: list_years ---
	s.AddTool(mcp.NewTool("list_years",
		mcp.WithDescription("List the years that can be selected for monthly counts."),
	), h.handleListYears)

	return s
}

// StartMCPServer starts the libstats MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
