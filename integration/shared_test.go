//go:build basic || database

// Package integration contains integration tests for libstats.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedLibstatsPath holds the path to a shared libstats binary built once for all tests.
	sharedLibstatsPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getLibstatsBinary returns the path to the libstats binary, building it once if needed.
func getLibstatsBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "libstats-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		libstatsPath := filepath.Join(tempDir, "libstats")
		buildCmd := exec.Command("go", "build", "-o", libstatsPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build libstats: %v", err))
		}

		sharedLibstatsPath = libstatsPath
	})

	return sharedLibstatsPath
}

// countsServer serves the two count endpoints and can be switched off.
type countsServer struct {
	*httptest.Server
	mu   sync.Mutex
	down bool
}

// newCountsServer starts a counts service with fixed data for 2021 to 2023.
func newCountsServer(t *testing.T) *countsServer {
	t.Helper()
	cs := &countsServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/counts/annual", cs.serve(`[{"_id":2019,"count":99},{"_id":2021,"count":5},{"_id":2023,"count":2}]`))
	mux.HandleFunc("/api/counts/monthly/2021", cs.serve(`[{"_id":1,"count":2},{"_id":6,"count":3}]`))
	mux.HandleFunc("/api/counts/monthly/2023", cs.serve(`[{"_id":3,"count":2},{"_id":13,"count":8}]`))
	cs.Server = httptest.NewServer(mux)
	t.Cleanup(cs.Close)
	return cs
}

func (cs *countsServer) serve(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		cs.mu.Lock()
		down := cs.down
		cs.mu.Unlock()
		if down {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

// setDown makes every endpoint answer 503.
func (cs *countsServer) setDown(down bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.down = down
}

// runLibstats runs the binary with extra environment variables and returns stdout and stderr.
func runLibstats(t *testing.T, env []string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(getLibstatsBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
	}
	return stdout.String(), stderr.String(), err
}
