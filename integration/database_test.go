//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestLibstatsWithMySQL tests the libstats CLI with a MySQL backend.
func TestLibstatsWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "libstats",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/libstats?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestLibstatsWithPostgres tests the libstats CLI with a PostgreSQL backend.
func TestLibstatsWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}

// runBackendScenario clears, fills and inspects both stores on one server.
func runBackendScenario(t *testing.T, backend, connStr string) {
	t.Helper()
	srv := newCountsServer(t)
	env := []string{
		"LIBSTATS_BASE_URL=" + srv.URL,
		"LIBSTATS_CACHE_BACKEND=" + backend,
		"LIBSTATS_CACHE_DB_CONNECT=" + connStr,
		"LIBSTATS_HISTORY_BACKEND=" + backend,
		"LIBSTATS_HISTORY_DB_CONNECT=" + connStr,
	}

	_, _, err := runLibstats(t, env, "cache", "clear")
	require.NoError(t, err)
	_, _, err = runLibstats(t, env, "history", "clear")
	require.NoError(t, err)

	stdout, _, err := runLibstats(t, env, "history", "migrate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "to version 2")

	_, _, err = runLibstats(t, env, "dashboard", "--year", "2023")
	require.NoError(t, err)

	// The cache answers once the service is gone
	srv.setDown(true)
	stdout, _, err = runLibstats(t, env, "monthly", "--year", "2023", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"cached": true`)

	stdout, _, err = runLibstats(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total Entries: 2")

	stdout, _, err = runLibstats(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total Fetches: 3")
}
