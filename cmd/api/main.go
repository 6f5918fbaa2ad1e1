// Package main provides the entrypoint for the CloudMagazine API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/api"
	"github.com/cloudmagazine/cloudmagazine/internal/api/handler"
	"github.com/cloudmagazine/cloudmagazine/internal/api/middleware"
	"github.com/cloudmagazine/cloudmagazine/internal/config"
	"github.com/cloudmagazine/cloudmagazine/internal/database"
	"github.com/cloudmagazine/cloudmagazine/internal/favorites"
	forecastmeteo "github.com/cloudmagazine/cloudmagazine/internal/forecast/openmeteo"
	geometeo "github.com/cloudmagazine/cloudmagazine/internal/geocoding/openmeteo"
	"github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"
	"github.com/cloudmagazine/cloudmagazine/internal/resolver"
	"github.com/cloudmagazine/cloudmagazine/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "cloudmagazine-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting CloudMagazine API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := resilience.NewRequestMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// Favorites repository, selected by backend
	readinessChecks := map[string]handler.ReadinessCheckFunc{}

	var favoritesRepo favorites.Repository
	var pool *pgxpool.Pool
	switch cfg.FavoritesBackend {
	case config.BackendPostgres:
		dbConfig := database.ConfigFromEnv()
		pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		favoritesRepo = favorites.NewPostgresRepository(pool)
		readinessChecks["database"] = pool.Ping
	case config.BackendMemory:
		favoritesRepo = favorites.NewInMemoryRepository()
	default:
		favoritesRepo = favorites.NewFileRepository(cfg.FavoritesFile)
	}

	favoritesService, err := favorites.NewService(ctx, favorites.ServiceConfig{
		Repository: favoritesRepo,
		Logger:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load favorites")
	}
	log.Info().
		Int("favorites", len(favoritesService.List())).
		Str("backend", string(cfg.FavoritesBackend)).
		Msg("favorites service initialized")

	// Provider clients share a health registry
	registry := resilience.NewRegistry()

	geocodingClient := geometeo.NewClient(geometeo.ClientConfig{
		BaseURL: cfg.GeocodingBaseURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:     geometeo.ProviderName,
			Timeout:  cfg.RequestTimeout,
			Registry: registry,
			Metrics:  providerMetrics,
		}),
		Logger: log,
	})

	forecastClient := forecastmeteo.NewClient(forecastmeteo.ClientConfig{
		BaseURL: cfg.ForecastBaseURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:     forecastmeteo.ProviderName,
			Timeout:  cfg.RequestTimeout,
			Registry: registry,
			Metrics:  providerMetrics,
		}),
		Logger: log,
	})

	// Location resolver
	res := resolver.New(resolver.Config{
		Geocoder:       geocodingClient,
		Forecaster:     forecastClient,
		Logger:         log,
		DefaultQuery:   cfg.DefaultQuery,
		RequestTimeout: cfg.RequestTimeout,
		MaxCandidates:  cfg.MaxCandidates,
	})

	// Resolve the default location so the first request sees weather instead
	// of an idle state. Failure is not fatal, the state simply starts failed.
	if state, err := res.ResolveDefault(ctx); err != nil {
		log.Warn().Err(err).Msg("initial resolution rejected")
	} else {
		log.Info().
			Str("phase", string(state.Phase)).
			Str("query", res.DefaultQuery()).
			Msg("initial resolution settled")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		Resolver:         res,
		FavoritesService: favoritesService,
		ProviderRegistry: registry,
		ReadinessChecks:  readinessChecks,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
