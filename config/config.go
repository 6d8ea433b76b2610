package config

import (
	"fmt"
	"os"

	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/logger"
)

const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port string

	// Storage
	StoreDriver string
	DBPath      string // DuckDB file
	DatabaseURL string // Postgres

	// Basic auth in front of the API; empty disables it.
	AuthUser string
	AuthPass string

	QuotaMode   invoicing.QuotaMode
	QuotaWindow invoicing.QuotaWindow

	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	mode, err := invoicing.ParseQuotaMode(getEnv("QUOTA_MODE", string(invoicing.QuotaWarn)))
	if err != nil {
		return nil, fmt.Errorf("QUOTA_MODE: %w", err)
	}
	window, err := invoicing.ParseQuotaWindow(getEnv("QUOTA_WINDOW", string(invoicing.WindowCalendarMonth)))
	if err != nil {
		return nil, fmt.Errorf("QUOTA_WINDOW: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		StoreDriver:   getEnv("STORE_DRIVER", DriverDuckDB),
		DBPath:        getEnv("DB_PATH", "./data/invoicer.duckdb"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		AuthUser:      getEnv("AUTH_USER", ""),
		AuthPass:      getEnv("AUTH_PASS", ""),
		QuotaMode:     mode,
		QuotaWindow:   window,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverDuckDB:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the duckdb store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: duckdb, postgres, memory")
	}
	if (c.AuthUser == "") != (c.AuthPass == "") {
		return fmt.Errorf("AUTH_USER and AUTH_PASS must be set together")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
