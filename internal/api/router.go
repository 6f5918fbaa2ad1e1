// Package api provides the HTTP API for CloudMagazine.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/api/handler"
	"github.com/cloudmagazine/cloudmagazine/internal/api/middleware"
	"github.com/cloudmagazine/cloudmagazine/internal/favorites"
	"github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"
	"github.com/cloudmagazine/cloudmagazine/internal/resolver"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	Resolver         *resolver.Resolver
	FavoritesService *favorites.Service
	ProviderRegistry *resilience.Registry
	ReadinessChecks  map[string]handler.ReadinessCheckFunc
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "cloudmagazine-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON request bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Registry:  cfg.ProviderRegistry,
		Checks:    cfg.ReadinessChecks,
		Resolver:  cfg.Resolver,
		Favorites: cfg.FavoritesService,
	})
	weatherHandler := handler.NewWeatherHandler(cfg.Resolver, cfg.FavoritesService, cfg.Logger)
	favoritesHandler := handler.NewFavoritesHandler(cfg.FavoritesService, cfg.Logger)

	// Rate limit middleware for different endpoint categories
	resolveRateLimit := middleware.RateLimitByIP(middleware.ResolveRateLimit)   // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Weather resolution endpoints. The resolve/search/select operations
		// fan out to upstream providers, so they get the stricter limit.
		r.Route("/weather", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", weatherHandler.GetState)
			r.With(resolveRateLimit).Post("/resolve", weatherHandler.Resolve)
			r.With(resolveRateLimit).Post("/search", weatherHandler.Search)
			r.With(resolveRateLimit).Post("/select", weatherHandler.Select)
			r.With(resolveRateLimit).Post("/reset", weatherHandler.Reset)
		})

		// Favorites endpoints
		r.Route("/favorites", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", favoritesHandler.List)
			r.Put("/", favoritesHandler.Replace)
			r.Post("/toggle", favoritesHandler.Toggle)
		})
	})

	return r
}
