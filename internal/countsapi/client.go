// Package countsapi talks to the borrow counts service.
package countsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/huangsam/libstats/internal/contract"
	"github.com/huangsam/libstats/schema"
)

// Endpoint paths relative to the base URL.
const (
	AnnualPath  = "/api/counts/annual"
	MonthlyPath = "/api/counts/monthly/"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

var (
	// ErrStatus is returned when the server answers with a non-2xx status.
	ErrStatus = errors.New("unexpected response status")

	// ErrDecode is returned when the body is not a valid list of counts.
	ErrDecode = errors.New("invalid counts payload")
)

// Client fetches sparse series from the counts API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ contract.CountsClient = &Client{} // Compile-time check

// NewClient returns a client for baseURL with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchAnnual implements the CountsClient interface.
func (c *Client) FetchAnnual(ctx context.Context) (schema.SparseSeries, error) {
	return c.fetch(ctx, c.baseURL+AnnualPath)
}

// FetchMonthly implements the CountsClient interface.
func (c *Client) FetchMonthly(ctx context.Context, year int) (schema.SparseSeries, error) {
	return c.fetch(ctx, c.baseURL+MonthlyPath+strconv.Itoa(year))
}

// wirePoint mirrors one aggregation row. Pointers detect missing fields.
type wirePoint struct {
	ID    *int `json:"_id"`
	Count *int `json:"count"`
}

func (c *Client) fetch(ctx context.Context, url string) (schema.SparseSeries, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, url, resp.StatusCode)
	}

	return decodeSeries(io.LimitReader(resp.Body, maxBodyBytes))
}

// decodeSeries parses a JSON array of {"_id", "count"} objects.
func decodeSeries(r io.Reader) (schema.SparseSeries, error) {
	var rows []wirePoint
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	series := make(schema.SparseSeries, 0, len(rows))
	for i, row := range rows {
		if row.ID == nil || row.Count == nil {
			return nil, fmt.Errorf("%w: entry %d must have integer _id and count", ErrDecode, i)
		}
		if *row.Count < 0 {
			return nil, fmt.Errorf("%w: entry %d has negative count %d", ErrDecode, i, *row.Count)
		}
		series = append(series, schema.CountPoint{Key: *row.ID, Count: *row.Count})
	}
	return series, nil
}
