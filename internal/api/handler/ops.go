// Package handler provides HTTP handlers for the CloudMagazine API.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/cloudmagazine/cloudmagazine/internal/api/models"
	"github.com/cloudmagazine/cloudmagazine/internal/api/response"
	"github.com/cloudmagazine/cloudmagazine/internal/favorites"
	"github.com/cloudmagazine/cloudmagazine/internal/provider/resilience"
	"github.com/cloudmagazine/cloudmagazine/internal/resolver"
)

// ReadinessCheckFunc reports whether a named dependency is ready.
type ReadinessCheckFunc func(ctx context.Context) error

// OpsConfig holds configuration for the OpsHandler.
type OpsConfig struct {
	Version   string
	BuildTime string

	// Registry provides upstream provider circuit health.
	Registry *resilience.Registry

	// Checks are per-dependency readiness probes keyed by name.
	Checks map[string]ReadinessCheckFunc

	// Resolver and Favorites feed the subsystem section of the status
	// report. Optional.
	Resolver  *resolver.Resolver
	Favorites *favorites.Service
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	checks    map[string]ReadinessCheckFunc
	resolver  *resolver.Resolver
	favorites *favorites.Service
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		registry:  cfg.Registry,
		checks:    cfg.Checks,
		resolver:  cfg.Resolver,
		favorites: cfg.Favorites,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Fails with 503 when any registered dependency check fails.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := models.HealthStatusOK
	details := make(map[string]interface{}, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status = models.HealthStatusFail
			details[name] = err.Error()
			continue
		}
		details[name] = "ok"
	}

	health := models.Health{
		Status:  status,
		Time:    models.Timestamp(time.Now()),
		Details: details,
	}

	code := http.StatusOK
	if status == models.HealthStatusFail {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	providers := []models.ProviderStatus{}
	overall := models.HealthStatusOK
	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			ps := models.ProviderStatus{
				Provider: ph.Name,
				Status:   providerStatus(ph),
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				ps.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				ps.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				ps.Message = &msg
			}
			if ps.Status != models.HealthStatusOK && overall == models.HealthStatusOK {
				overall = models.HealthStatusDegraded
			}
			providers = append(providers, ps)
		}
	}

	status := models.SystemStatus{
		Status:     overall,
		Time:       now,
		Subsystems: h.subsystems(),
		Providers:  providers,
	}
	response.JSON(w, r, http.StatusOK, status)
}

// subsystems reports the internal weather subsystems. A failed resolution is
// a user-recoverable condition, so it degrades the subsystem without failing
// the service.
func (h *OpsHandler) subsystems() []models.SubsystemStatus {
	out := []models.SubsystemStatus{}

	if h.resolver != nil {
		state := h.resolver.State()
		ss := models.SubsystemStatus{
			Name:   "resolution",
			Status: models.HealthStatusOK,
		}
		detail := string(state.Phase)
		if state.Phase == resolver.PhaseFailed {
			ss.Status = models.HealthStatusDegraded
			detail = state.Reason
		}
		ss.Detail = &detail
		out = append(out, ss)
	}

	if h.favorites != nil {
		detail := fmt.Sprintf("%d saved locations", len(h.favorites.List()))
		out = append(out, models.SubsystemStatus{
			Name:   "favorites",
			Status: models.HealthStatusOK,
			Detail: &detail,
		})
	}

	return out
}

func providerStatus(ph *resilience.ProviderHealth) models.HealthStatus {
	switch ph.CircuitState {
	case gobreaker.StateOpen:
		return models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
