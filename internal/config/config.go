package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mmynk/tripkit/internal/ledger"
)

type Config struct {
	// HTTP Server
	Port       string
	CORSOrigin string

	// Database
	DBPath         string
	SeedSampleData bool

	// Ledger
	SplitMode string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		DBPath:         getEnv("DB_PATH", ":memory:"),
		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", false),

		SplitMode: getEnv("SPLIT_MODE", string(ledger.SplitEqual)),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if _, err := ledger.ParseSplitMode(c.SplitMode); err != nil {
		errors = append(errors, err.Error())
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Mode returns the parsed split mode. Call Validate first.
func (c *Config) Mode() ledger.SplitMode {
	mode, err := ledger.ParseSplitMode(c.SplitMode)
	if err != nil {
		return ledger.SplitEqual
	}
	return mode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
