// Package main provides the entrypoint for the CloudMagazine background worker.
//
// The worker periodically re-fetches forecasts for every saved favorite,
// keeping upstream provider health visible and flagging labels that no
// longer resolve.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/config"
	"github.com/cloudmagazine/cloudmagazine/internal/database"
	"github.com/cloudmagazine/cloudmagazine/internal/favorites"
	forecastmeteo "github.com/cloudmagazine/cloudmagazine/internal/forecast/openmeteo"
	geometeo "github.com/cloudmagazine/cloudmagazine/internal/geocoding/openmeteo"
	"github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"
	"github.com/cloudmagazine/cloudmagazine/internal/worker"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "cloudmagazine-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().Msg("starting CloudMagazine worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	// Favorites repository, selected by backend
	var favoritesRepo favorites.Repository
	switch cfg.FavoritesBackend {
	case config.BackendPostgres:
		pool, err := database.Connect(ctx, database.ConfigFromEnv())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		favoritesRepo = favorites.NewPostgresRepository(pool)
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
		Msg("favorites loaded")

	registry := resilience.NewRegistry()

	geocodingClient := geometeo.NewClient(geometeo.ClientConfig{
		BaseURL: cfg.GeocodingBaseURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:     geometeo.ProviderName,
			Timeout:  cfg.RequestTimeout,
			Registry: registry,
		}),
		Logger: log,
	})

	forecastClient := forecastmeteo.NewClient(forecastmeteo.ClientConfig{
		BaseURL: cfg.ForecastBaseURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:     forecastmeteo.ProviderName,
			Timeout:  cfg.RequestTimeout,
			Registry: registry,
		}),
		Logger: log,
	})

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Concurrency: cfg.RefreshConcurrency,
			Timeout:     cfg.RequestTimeout,
		},
		Logger:     log,
		Favorites:  favoritesService,
		Geocoder:   geocodingClient,
		Forecaster: forecastClient,
	})

	scheduler := worker.NewScheduler(job, cfg.RefreshInterval, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	log.Info().
		Dur("interval", cfg.RefreshInterval).
		Int("concurrency", cfg.RefreshConcurrency).
		Msg("refresh scheduler started")

	// Health endpoint for container orchestration
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"metrics": job.Metrics(),
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health endpoint listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
