package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/libstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		BaseURL:      "http://localhost:3000",
		Timeout:      "5s",
		Output:       "text",
		CacheBackend: "sqlite",
		CacheTTL:     "1h",
		Emoji:        "no",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	now := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.Timeout)
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.Equal(t, 2023, cfg.Year, "Year defaults to the current year")
				assert.Equal(t, time.Hour, cfg.CacheTTL)
				assert.True(t, cfg.UseColors)
				assert.False(t, cfg.UseEmojis)
			},
		},
		{
			name: "defaults for empty endpoint settings",
			mutate: func(in *ConfigRawInput) {
				in.BaseURL = ""
				in.Timeout = ""
				in.CacheTTL = ""
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
				assert.Equal(t, DefaultTimeout, cfg.Timeout)
				assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
			},
		},
		{
			name:   "trailing slash trimmed",
			mutate: func(in *ConfigRawInput) { in.BaseURL = "https://stats.example.org/" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://stats.example.org", cfg.BaseURL)
			},
		},
		{
			name:   "explicit year",
			mutate: func(in *ConfigRawInput) { in.Year = 2021 },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2021, cfg.Year)
			},
		},
		{
			name:        "year outside domain",
			mutate:      func(in *ConfigRawInput) { in.Year = 2019 },
			expectError: true,
		},
		{
			name:        "unsupported scheme",
			mutate:      func(in *ConfigRawInput) { in.BaseURL = "ftp://localhost" },
			expectError: true,
		},
		{
			name:        "missing host",
			mutate:      func(in *ConfigRawInput) { in.BaseURL = "http://" },
			expectError: true,
		},
		{
			name:        "bad timeout",
			mutate:      func(in *ConfigRawInput) { in.Timeout = "soon" },
			expectError: true,
		},
		{
			name:        "zero timeout",
			mutate:      func(in *ConfigRawInput) { in.Timeout = "0s" },
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "html needs output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "html" },
			expectError: true,
		},
		{
			name: "html with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "HTML"
				in.OutputFile = "dashboard.html"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.HTMLOut, cfg.Output)
			},
		},
		{
			name:        "negative width",
			mutate:      func(in *ConfigRawInput) { in.Width = -1 },
			expectError: true,
		},
		{
			name:        "invalid emoji",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "sometimes" },
			expectError: true,
		},
		{
			name:        "invalid cache backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			expectError: true,
		},
		{
			name:        "negative cache ttl",
			mutate:      func(in *ConfigRawInput) { in.CacheTTL = "-1h" },
			expectError: true,
		},
		{
			name: "mysql cache requires connection",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "mysql"
			},
			expectError: true,
		},
		{
			name: "history disabled by default",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = ""
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.HistoryBackend)
			},
		},
		{
			name: "invalid history backend",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "mongo"
			},
			expectError: true,
		},
		{
			name: "sqlite stores cannot share a file",
			mutate: func(in *ConfigRawInput) {
				in.CacheDBConnect = filepath.Join("tmp", "shared.db")
				in.HistoryBackend = "sqlite"
				in.HistoryDBConnect = filepath.Join("tmp", "shared.db")
			},
			expectError: true,
		},
		{
			name: "postgres history",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "postgresql"
				in.HistoryDBConnect = "host=localhost port=5432 user=postgres dbname=libstats"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.PostgreSQLBackend, cfg.HistoryBackend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input, now)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDefaultYear(t *testing.T) {
	tests := []struct {
		now      time.Time
		expected int
	}{
		{time.Date(2022, time.March, 3, 0, 0, 0, 0, time.UTC), 2022},
		{time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2001, time.December, 31, 0, 0, 0, 0, time.UTC), 2020},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DefaultYear(tt.now), "DefaultYear(%s)", tt.now)
	}
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear(2020))
	assert.NoError(t, ValidateYear(2025))
	assert.Error(t, ValidateYear(2019))
	assert.Error(t, ValidateYear(2026))
}

func TestRevalidateYear(t *testing.T) {
	cfg := &Config{Year: 2020}

	clone := cfg.CloneWithYear(2024)
	require.NoError(t, RevalidateYear(clone, clone.Year))
	assert.Equal(t, 2024, clone.Year)
	assert.Equal(t, 2020, cfg.Year, "Original config must not change")

	assert.Error(t, RevalidateYear(cfg.Clone(), 1999))

	zero := cfg.Clone()
	require.NoError(t, RevalidateYear(zero, 0))
	assert.True(t, schema.AnnualDomain.Contains(zero.Year))
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite any", schema.SQLiteBackend, "", false},
		{"none any", schema.NoneBackend, "whatever", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/libstats", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql no tcp", schema.MySQLBackend, "root:pw@localhost/libstats", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=libstats", false},
		{"postgres no host", schema.PostgreSQLBackend, "dbname=libstats", true},
		{"postgres no dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, "  run1 "))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run1", profile.Prefix)

	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)
}
