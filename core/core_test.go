package core

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// useMockClient swaps the client constructor and captures stdout for one test.
func useMockClient(t *testing.T, client contract.CountsClient) *bytes.Buffer {
	t.Helper()
	origClient, origStdout := newClient, stdout
	var buf bytes.Buffer
	newClient = func(*contract.Config) contract.CountsClient { return client }
	stdout = &buf
	t.Cleanup(func() {
		newClient, stdout = origClient, origStdout
	})
	return &buf
}

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		BaseURL:   "http://counts.test",
		Year:      2023,
		Output:    output,
		Width:     100,
		UseEmojis: true,
	}
}

func TestGetAnnualResult(t *testing.T) {
	client := &contract.MockCountsClient{}
	client.On("FetchAnnual", mock.Anything).Return(schema.SparseSeries{{Key: 2021, Count: 5}, {Key: 2023, Count: 2}}, nil)
	out := useMockClient(t, client)

	result, err := GetAnnualResult(context.Background(), testConfig(schema.TextOut), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5, 0, 2, 0, 0}, result.Points.Counts())
	assert.Contains(t, out.String(), "🔎 Source: http://counts.test (annual)")
	assert.Contains(t, out.String(), "📅 Years: 2020 → 2025")
}

func TestGetMonthlyResult(t *testing.T) {
	client := &contract.MockCountsClient{}
	client.On("FetchMonthly", mock.Anything, 2023).Return(schema.SparseSeries{{Key: 3, Count: 7}}, nil)
	out := useMockClient(t, client)

	result, err := GetMonthlyResult(WithSuppressHeader(context.Background()), testConfig(schema.TextOut), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Points[2].Count)
	assert.Empty(t, out.String(), "Header suppressed")
}

func TestGetMonthlyResult_InvalidYear(t *testing.T) {
	useMockClient(t, &contract.MockCountsClient{})
	cfg := testConfig(schema.TextOut)
	cfg.Year = 2030

	_, err := GetMonthlyResult(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestGetDashboardResult(t *testing.T) {
	client := &contract.MockCountsClient{}
	client.On("FetchAnnual", mock.Anything).Return(schema.SparseSeries{{Key: 2023, Count: 2}}, nil)
	client.On("FetchMonthly", mock.Anything, 2023).Return(nil, errors.New("boom"))
	useMockClient(t, client)

	result, err := GetDashboardResult(context.Background(), testConfig(schema.JSONOut), nil)
	require.NoError(t, err)
	assert.Equal(t, 2023, result.SelectedYear)
	assert.Equal(t, 2, result.Annual.Points.Total())
	assert.Zero(t, result.Monthly.Points.Total(), "Failed monthly fetch stays zero-filled")
}

func TestExecuteAnnual(t *testing.T) {
	client := &contract.MockCountsClient{}
	client.On("FetchAnnual", mock.Anything).Return(schema.SparseSeries{{Key: 2022, Count: 4}}, nil)
	out := useMockClient(t, client)

	require.NoError(t, ExecuteAnnual(context.Background(), testConfig(schema.CSVOut), nil))
	assert.Contains(t, out.String(), "annual,,2022,2022,4,Peak")
	assert.NotContains(t, out.String(), "Source:", "No header for machine-readable output")
}

func TestExecuteMonthly(t *testing.T) {
	client := &contract.MockCountsClient{}
	client.On("FetchMonthly", mock.Anything, 2023).Return(schema.SparseSeries{{Key: 12, Count: 1}}, nil)
	out := useMockClient(t, client)

	require.NoError(t, ExecuteMonthly(context.Background(), testConfig(schema.TextOut), nil))
	assert.Contains(t, out.String(), "Year: 2023")
	assert.Contains(t, out.String(), "Dec")
	assert.Contains(t, out.String(), "Total: 1, peak: Dec (1)")
}

func TestExecuteDashboard(t *testing.T) {
	client := &contract.MockCountsClient{}
	client.On("FetchAnnual", mock.Anything).Return(schema.SparseSeries{}, nil)
	client.On("FetchMonthly", mock.Anything, 2023).Return(schema.SparseSeries{}, nil)
	out := useMockClient(t, client)

	require.NoError(t, ExecuteDashboard(context.Background(), testConfig(schema.JSONOut), nil))
	assert.Contains(t, out.String(), `"year_options": [`)
	assert.Contains(t, out.String(), `"selected_year": 2023`)
}

func TestLogHeader(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(schema.TextOut)
	cfg.UseEmojis = false

	logHeader(context.Background(), &buf, cfg, "")
	assert.Equal(t, "Source: http://counts.test (dashboard)\nYear: 2023\n", buf.String())

	buf.Reset()
	cfg.OutputFile = "out.txt"
	logHeader(context.Background(), &buf, cfg, schema.AnnualSeries)
	assert.Empty(t, buf.String())
}
