package countsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/libstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves fixed bodies per path.
func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAnnual(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		AnnualPath: `[{"_id":2023,"count":2},{"_id":2021,"count":5},{"_id":2019,"count":99}]`,
	})
	client := NewClient(srv.URL, time.Second)

	series, err := client.FetchAnnual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.SparseSeries{{Key: 2023, Count: 2}, {Key: 2021, Count: 5}, {Key: 2019, Count: 99}}, series)
}

func TestFetchMonthly(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		MonthlyPath + "2022": `[{"_id":3,"count":7}]`,
		MonthlyPath + "2024": `[]`,
	})
	client := NewClient(srv.URL, time.Second)

	series, err := client.FetchMonthly(context.Background(), 2022)
	require.NoError(t, err)
	assert.Equal(t, schema.SparseSeries{{Key: 3, Count: 7}}, series)

	series, err = client.FetchMonthly(context.Background(), 2024)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantErr error
	}{
		{"server error", `oops`, http.StatusInternalServerError, ErrStatus},
		{"not an array", `{"_id":1,"count":2}`, http.StatusOK, ErrDecode},
		{"broken json", `[{"_id":1,`, http.StatusOK, ErrDecode},
		{"missing count", `[{"_id":1}]`, http.StatusOK, ErrDecode},
		{"missing id", `[{"count":1}]`, http.StatusOK, ErrDecode},
		{"fractional count", `[{"_id":1,"count":1.5}]`, http.StatusOK, ErrDecode},
		{"string id", `[{"_id":"2020","count":1}]`, http.StatusOK, ErrDecode},
		{"negative count", `[{"_id":1,"count":-2}]`, http.StatusOK, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).FetchAnnual(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := newTestServer(t, map[string]string{})
	_, err := NewClient(srv.URL, time.Second).FetchMonthly(context.Background(), 2020)
	require.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second).FetchAnnual(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond).FetchAnnual(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Timeout") || strings.Contains(err.Error(), "deadline"), err.Error())
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).FetchAnnual(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrStatus)
}
