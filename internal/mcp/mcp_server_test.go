package mcp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/huangsam/libstats/internal/contract"
	mcp_internal "github.com/huangsam/libstats/internal/mcp"
	"github.com/huangsam/libstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCountsServer serves fixed annual and monthly responses.
func newCountsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/counts/annual", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":2021,"count":5},{"_id":2023,"count":2}]`))
	})
	mux.HandleFunc("/api/counts/monthly/2022", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":3,"count":7}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func callTool(t *testing.T, baseCfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseCfg, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, Year: 2023}

	t.Run("get_monthly_counts missing year", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_monthly_counts", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "year is required")
	})

	t.Run("get_monthly_counts year out of range", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_monthly_counts", map[string]any{"year": 2019.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "invalid year")
	})

	t.Run("get_dashboard year out of range", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_dashboard", map[string]any{"year": 2031.0})
		assert.True(t, res.IsError)
	})
}

func TestMCPServerHandlers_Fetch(t *testing.T) {
	srv := newCountsServer(t)
	baseCfg := &contract.Config{BaseURL: srv.URL, Timeout: time.Second, Year: 2023}

	t.Run("get_annual_counts", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_annual_counts", nil)
		require.False(t, res.IsError)

		var result schema.SeriesResult
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &result))
		assert.Equal(t, []int{0, 5, 0, 2, 0, 0}, result.Points.Counts())
	})

	t.Run("get_monthly_counts", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_monthly_counts", map[string]any{"year": 2022.0})
		require.False(t, res.IsError)

		var result schema.SeriesResult
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &result))
		assert.Equal(t, 2022, result.Year)
		assert.Len(t, result.Points, 12)
		assert.Equal(t, 7, result.Points[2].Count)
	})

	t.Run("get_dashboard", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_dashboard", map[string]any{"year": 2022.0})
		require.False(t, res.IsError)

		var result schema.DashboardResult
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &result))
		assert.Equal(t, 2022, result.SelectedYear)
		assert.Equal(t, 7, result.Monthly.Points.Total())
		assert.Equal(t, 7, result.Annual.Points.Total())
	})

	t.Run("unknown monthly year is zero-filled", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_monthly_counts", map[string]any{"year": 2025.0})
		require.False(t, res.IsError)
		assert.NotContains(t, resultText(res), `"count": 1`)
	})
}

func TestMCPServerHandlers_ListYears(t *testing.T) {
	res := callTool(t, &contract.Config{}, "list_years", nil)
	require.False(t, res.IsError)

	var payload struct {
		Years       []int `json:"years"`
		DefaultYear int   `json:"default_year"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	assert.Equal(t, []int{2020, 2021, 2022, 2023, 2024, 2025}, payload.Years)
	assert.True(t, schema.AnnualDomain.Contains(payload.DefaultYear))
}
