package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/api/models"
	"github.com/cloudmagazine/cloudmagazine/internal/api/response"
	"github.com/cloudmagazine/cloudmagazine/internal/favorites"
	"github.com/cloudmagazine/cloudmagazine/internal/forecast"
	"github.com/cloudmagazine/cloudmagazine/internal/localtime"
	"github.com/cloudmagazine/cloudmagazine/internal/resolver"
)

// WeatherHandler handles location resolution and weather endpoints.
type WeatherHandler struct {
	resolver  *resolver.Resolver
	favorites *favorites.Service
	logger    zerolog.Logger
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(res *resolver.Resolver, favs *favorites.Service, logger zerolog.Logger) *WeatherHandler {
	return &WeatherHandler{
		resolver:  res,
		favorites: favs,
		logger:    logger,
	}
}

// GetState handles GET /v1/weather - the current resolution state.
func (h *WeatherHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state := h.resolver.State()
	response.JSON(w, r, http.StatusOK, h.toWeatherState(state))
}

// Resolve handles POST /v1/weather/resolve - best-effort single-match resolution.
func (h *WeatherHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var input models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	state, err := h.resolver.ResolveByName(r.Context(), input.Query)
	if err != nil {
		if errors.Is(err, resolver.ErrEmptyQuery) {
			response.BadRequest(w, r, "query must not be empty", []models.FieldError{
				{Field: "query", Message: "required"},
			})
			return
		}
		response.InternalError(w, r, "resolution failed")
		return
	}

	response.JSON(w, r, http.StatusOK, h.toWeatherState(state))
}

// Search handles POST /v1/weather/search - explicit candidate search.
// All matches are surfaced for disambiguation, even a single one.
func (h *WeatherHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	state, err := h.resolver.ResolveCandidates(r.Context(), input.Query)
	if err != nil {
		if errors.Is(err, resolver.ErrEmptyQuery) {
			response.BadRequest(w, r, "query must not be empty", []models.FieldError{
				{Field: "query", Message: "required"},
			})
			return
		}
		response.InternalError(w, r, "search failed")
		return
	}

	response.JSON(w, r, http.StatusOK, h.toWeatherState(state))
}

// Select handles POST /v1/weather/select - commit one disambiguation candidate.
func (h *WeatherHandler) Select(w http.ResponseWriter, r *http.Request) {
	var input models.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Name == "" || input.Country == "" {
		response.BadRequest(w, r, "name and country are required", []models.FieldError{
			{Field: "name", Message: "required"},
			{Field: "country", Message: "required"},
		})
		return
	}

	state, err := h.resolver.ResolveByCoordinates(r.Context(), input.Lat, input.Lon, input.Name, input.Country)
	if err != nil {
		if errors.Is(err, forecast.ErrInvalidCoordinates) {
			response.BadRequest(w, r, "coordinates out of range", []models.FieldError{
				{Field: "lat", Message: "must be between -90 and 90", Code: "OUT_OF_RANGE"},
				{Field: "lon", Message: "must be between -180 and 180", Code: "OUT_OF_RANGE"},
			})
			return
		}
		response.InternalError(w, r, "selection failed")
		return
	}

	response.JSON(w, r, http.StatusOK, h.toWeatherState(state))
}

// Reset handles POST /v1/weather/reset - re-resolve the default location.
// This is the recovery action offered after a failure.
func (h *WeatherHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.resolver.ResolveDefault(r.Context())
	if err != nil {
		response.InternalError(w, r, "reset failed")
		return
	}

	response.JSON(w, r, http.StatusOK, h.toWeatherState(state))
}

// toWeatherState assembles the presentation form of a resolver state.
func (h *WeatherHandler) toWeatherState(state resolver.State) models.WeatherState {
	out := models.WeatherState{
		Phase:  string(state.Phase),
		Reason: state.Reason,
	}

	for _, c := range state.Candidates {
		out.Candidates = append(out.Candidates, models.Candidate{
			Name:        c.Name,
			AdminRegion: c.AdminRegion,
			Country:     c.Country,
			Lat:         c.Latitude,
			Lon:         c.Longitude,
		})
	}

	if state.Location == nil || state.Weather == nil {
		return out
	}

	snap := state.Weather
	report := &models.WeatherReport{
		Label:    state.Location.Label,
		Lat:      state.Location.Latitude,
		Lon:      state.Location.Longitude,
		Timezone: snap.Timezone,
		Current: models.CurrentConditions{
			TemperatureC:         snap.Current.TemperatureC,
			TemperatureF:         forecast.CelsiusToFahrenheit(snap.Current.TemperatureC),
			ApparentTemperatureC: snap.Current.ApparentTemperatureC,
			ApparentTemperatureF: forecast.CelsiusToFahrenheit(snap.Current.ApparentTemperatureC),
			HumidityPct:          snap.Current.HumidityPct,
			WindSpeedKmh:         snap.Current.WindSpeedKmh,
			IsDay:                snap.Current.IsDay,
			WeatherCode:          snap.Current.WeatherCode,
			Condition:            forecast.CodeLabel(snap.Current.WeatherCode),
			ConditionGroup:       string(forecast.CodeCondition(snap.Current.WeatherCode)),
		},
		FetchedAt: models.Timestamp(snap.FetchedAt),
	}

	for i, code := range snap.Daily.WeatherCodes {
		report.Daily = append(report.Daily, models.DayForecast{
			WeatherCode:    code,
			Condition:      forecast.CodeLabel(code),
			ConditionGroup: string(forecast.CodeCondition(code)),
			TempMaxC:       snap.Daily.TempMaxC[i],
			TempMaxF:       forecast.CelsiusToFahrenheit(snap.Daily.TempMaxC[i]),
			TempMinC:       snap.Daily.TempMinC[i],
			TempMinF:       forecast.CelsiusToFahrenheit(snap.Daily.TempMinC[i]),
		})
	}

	if info, err := localtime.Now(snap.Timezone); err == nil {
		report.LocalTime = &models.LocalTime{
			Time:        info.Time,
			Phase:       string(info.Phase),
			DayProgress: int(info.Progress),
		}
	} else {
		h.logger.Warn().Err(err).Str("timezone", snap.Timezone).Msg("local time unavailable")
	}

	if h.favorites != nil {
		report.Favorite = h.favorites.Contains(state.Location.Label)
	}

	out.Report = report
	return out
}
