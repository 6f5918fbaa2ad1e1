// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// FavoritesBackend selects where the favorites list is persisted.
type FavoritesBackend string

const (
	BackendFile     FavoritesBackend = "file"
	BackendPostgres FavoritesBackend = "postgres"
	BackendMemory   FavoritesBackend = "memory"
)

// AppConfig holds configuration shared by the API server and the worker.
type AppConfig struct {
	// Port the HTTP server listens on.
	Port string

	// Environment name reported to telemetry (e.g. "local", "production").
	Environment string

	// GeocodingBaseURL and ForecastBaseURL override the public Open-Meteo
	// endpoints; empty means the defaults.
	GeocodingBaseURL string
	ForecastBaseURL  string

	// DefaultQuery is the known-good location resolved at startup and on reset.
	DefaultQuery string

	// RequestTimeout bounds each upstream call.
	RequestTimeout time.Duration

	// MaxCandidates caps the disambiguation list.
	MaxCandidates int

	// FavoritesBackend selects the favorites repository implementation.
	FavoritesBackend FavoritesBackend

	// FavoritesFile is the JSON file path for the file backend; empty uses
	// the per-user default.
	FavoritesFile string

	// RefreshInterval controls how often the worker re-fetches forecasts for
	// saved locations.
	RefreshInterval time.Duration

	// RefreshConcurrency is the worker pool size for favorite refreshes.
	RefreshConcurrency int

	// Telemetry settings.
	OTLPEndpoint     string
	TelemetryEnabled bool
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:             getenvDefault("PORT", "8080"),
		Environment:      getenvDefault("ENVIRONMENT", "local"),
		GeocodingBaseURL: os.Getenv("GEOCODING_BASE_URL"),
		ForecastBaseURL:  os.Getenv("FORECAST_BASE_URL"),
		DefaultQuery:     getenvDefault("DEFAULT_QUERY", "New York"),
		FavoritesFile:    os.Getenv("FAVORITES_FILE"),
		OTLPEndpoint:     getenvDefault("OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("TELEMETRY_ENABLED") == "true",
	}

	timeout, err := getenvDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	interval, err := getenvDuration("REFRESH_INTERVAL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	cfg.MaxCandidates = getenvInt("MAX_CANDIDATES", 5)
	cfg.RefreshConcurrency = getenvInt("REFRESH_CONCURRENCY", 4)

	backend := FavoritesBackend(getenvDefault("FAVORITES_BACKEND", string(BackendFile)))
	switch backend {
	case BackendFile, BackendPostgres, BackendMemory:
		cfg.FavoritesBackend = backend
	default:
		return nil, fmt.Errorf("invalid FAVORITES_BACKEND: %q", backend)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
