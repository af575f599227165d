package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "PORTAL_ADDR", "DB_DRIVER", "LOG_LEVEL", "ENVIRONMENT", "VIEW_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, ":3000", cfg.PortalAddr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10*time.Minute, cfg.ViewTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.internal:9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("VIEW_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:9000", cfg.APIBaseURL)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.ViewTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Unparseable TTL", "VIEW_TTL", "soon"},
		{"Negative TTL", "VIEW_TTL", "-1m"},
		{"Unknown driver", "DB_DRIVER", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "portal", DBPassword: "secret", DBName: "studentdb", DBPort: "5432"}
	assert.Equal(t, "host=db user=portal password=secret dbname=studentdb port=5432 sslmode=disable", cfg.DSN())
}
