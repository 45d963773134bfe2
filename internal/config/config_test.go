package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripkit/internal/ledger"
)

func validConfig() Config {
	return Config{
		Port:       "8080",
		CORSOrigin: "*",
		DBPath:     ":memory:",
		SplitMode:  "equal",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{name: "valid defaults", mutate: func(c *Config) {}},
		{name: "reconcile mode", mutate: func(c *Config) { c.SplitMode = "reconcile" }},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.DBPath = "" },
			errorString: "database path cannot be empty",
		},
		{
			name:        "unknown split mode",
			mutate:      func(c *Config) { c.SplitMode = "weighted" },
			errorString: `unknown split mode "weighted"`,
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "trace" },
			errorString: "invalid log level 'trace'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			errorString: "invalid log format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CORS_ORIGIN", "DB_PATH", "SEED_SAMPLE_DATA", "SPLIT_MODE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.False(t, cfg.SeedSampleData)
	assert.Equal(t, ledger.SplitEqual, cfg.Mode())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/tripkit.db")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("SPLIT_MODE", "reconcile")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/tripkit.db", cfg.DBPath)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, ledger.SplitReconcile, cfg.Mode())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("SEED_SAMPLE_DATA", "sometimes")

	assert.False(t, Load().SeedSampleData)
}
