package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the portal and the student API.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	APIBaseURL string
	PortalAddr string
	APIAddr    string
	CORSOrigin string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBPath     string

	LogLevel    string
	Environment string

	// ViewTTL bounds how long an idle list view is kept for its delete actions.
	ViewTTL time.Duration
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*Config, error) {
	// godotenv.Load does not override variables that are already set.
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  getenv("API_BASE_URL", "http://localhost:8080"),
		PortalAddr:  getenv("PORTAL_ADDR", ":3000"),
		APIAddr:     getenv("API_ADDR", ":8080"),
		CORSOrigin:  getenv("CORS_ORIGIN", "http://localhost:3000"),
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getenv("DB_NAME", "studentdb"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBPath:      getenv("DB_PATH", "students.db"),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		Environment: strings.ToLower(getenv("ENVIRONMENT", "development")),
	}

	ttl, err := time.ParseDuration(getenv("VIEW_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIEW_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("VIEW_TTL must be positive, got %s", ttl)
	}
	cfg.ViewTTL = ttl

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, fmt.Errorf("API_BASE_URL is empty")
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
