package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/libstats/core"
	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// yearList is the payload of list_years.
type yearList struct {
	Years       []int `json:"years"`
	DefaultYear int   `json:"default_year"`
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetAnnualCounts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := core.GetAnnualResult(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleGetMonthlyCounts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := request.GetInt("year", 0)
	if year == 0 {
		return mcp.NewToolResultError("year is required"), nil
	}
	cfg := h.baseCfg.CloneWithYear(year)
	if err := contract.RevalidateYear(cfg, year); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid year: %v", err)), nil
	}

	result, err := core.GetMonthlyResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := request.GetInt("year", 0)
	cfg := h.baseCfg.CloneWithYear(year)
	if err := contract.RevalidateYear(cfg, year); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid year: %v", err)), nil
	}

	result, err := core.GetDashboardResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleListYears(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	years := make([]int, 0, schema.AnnualDomain.Len())
	for y := schema.AnnualDomain.Start; y <= schema.AnnualDomain.End; y++ {
		years = append(years, y)
	}
	return jsonResult(yearList{Years: years, DefaultYear: contract.DefaultYear(time.Now())}), nil
}
