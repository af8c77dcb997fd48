package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Data source modes
const (
	SourceLive    = "live"
	SourceFixture = "fixture"
)

// Config holds the dashboard service's runtime settings. The API token is
// env-injected; the service refuses to start in live mode without one.
type Config struct {
	Port        string
	BackendURL  string
	APIToken    string
	DataSource  string
	AllowOrigin string
}

// Load reads configuration from a .env file when present, then the
// environment, with sane development defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:8000"),
		APIToken:    os.Getenv("BACKEND_API_TOKEN"),
		DataSource:  getEnv("DATA_SOURCE", SourceLive),
		AllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
	}

	if cfg.DataSource != SourceLive && cfg.DataSource != SourceFixture {
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: must be %q or %q", cfg.DataSource, SourceLive, SourceFixture)
	}

	if cfg.DataSource == SourceLive && cfg.APIToken == "" {
		return nil, fmt.Errorf("BACKEND_API_TOKEN is required in live mode")
	}

	return cfg, nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
