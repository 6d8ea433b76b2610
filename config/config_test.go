package config

import (
	"testing"

	"github.com/satheeshds/invoicer/invoicing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "STORE_DRIVER", "DB_PATH", "DATABASE_URL", "AUTH_USER", "AUTH_PASS",
	"QUOTA_MODE", "QUOTA_WINDOW", "LOG_LEVEL", "LOG_FORMAT", "LOG_TIME_FORMAT", "LOG_OUTPUT",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverDuckDB, cfg.StoreDriver)
	assert.Equal(t, "./data/invoicer.duckdb", cfg.DBPath)
	assert.Equal(t, invoicing.QuotaWarn, cfg.QuotaMode)
	assert.Equal(t, invoicing.WindowCalendarMonth, cfg.QuotaWindow)

	lc := cfg.GetLoggerConfig()
	assert.Equal(t, "info", lc.Level)
	assert.Equal(t, "console", lc.Format)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "postgres",
			env:  map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": "postgres://localhost/invoicer"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverPostgres, cfg.StoreDriver)
				assert.Equal(t, "postgres://localhost/invoicer", cfg.DatabaseURL)
			},
		},
		{
			name: "quota block over trailing window",
			env:  map[string]string{"STORE_DRIVER": "memory", "QUOTA_MODE": "block", "QUOTA_WINDOW": "trailing30"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, invoicing.QuotaBlock, cfg.QuotaMode)
				assert.Equal(t, invoicing.WindowTrailing30, cfg.QuotaWindow)
			},
		},
		{
			name: "auth pair",
			env:  map[string]string{"AUTH_USER": "admin", "AUTH_PASS": "secret"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "admin", cfg.AuthUser)
			},
		},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "sqlite"}, wantErr: "STORE_DRIVER"},
		{name: "postgres without url", env: map[string]string{"STORE_DRIVER": "postgres"}, wantErr: "DATABASE_URL"},
		{name: "user without password", env: map[string]string{"AUTH_USER": "admin"}, wantErr: "AUTH_USER and AUTH_PASS"},
		{name: "bad quota mode", env: map[string]string{"QUOTA_MODE": "strict"}, wantErr: "QUOTA_MODE"},
		{name: "bad quota window", env: map[string]string{"QUOTA_WINDOW": "week"}, wantErr: "QUOTA_WINDOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
