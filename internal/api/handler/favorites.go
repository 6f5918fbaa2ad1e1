package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/api/models"
	"github.com/cloudmagazine/cloudmagazine/internal/api/response"
	"github.com/cloudmagazine/cloudmagazine/internal/favorites"
)

// FavoritesHandler handles saved-location endpoints.
type FavoritesHandler struct {
	favorites *favorites.Service
	logger    zerolog.Logger
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(favs *favorites.Service, logger zerolog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favs,
		logger:    logger,
	}
}

// List handles GET /v1/favorites - the saved labels in storage order.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.FavoritesList{
		Labels: h.favorites.List(),
	})
}

// Replace handles PUT /v1/favorites - overwrite the whole list.
func (h *FavoritesHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var input models.FavoritesList
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Labels == nil {
		response.BadRequest(w, r, "labels is required", []models.FieldError{
			{Field: "labels", Message: "required"},
		})
		return
	}

	if err := h.favorites.Replace(r.Context(), input.Labels); err != nil {
		h.logger.Error().Err(err).Msg("replacing favorites failed")
		response.InternalError(w, r, "saving favorites failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.FavoritesList{
		Labels: h.favorites.List(),
	})
}

// Toggle handles POST /v1/favorites/toggle - add or remove one label.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var input models.FavoriteToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Label == "" {
		response.BadRequest(w, r, "label is required", []models.FieldError{
			{Field: "label", Message: "required"},
		})
		return
	}

	saved, err := h.favorites.Toggle(r.Context(), input.Label)
	if err != nil {
		h.logger.Error().Err(err).Str("label", input.Label).Msg("toggling favorite failed")
		response.InternalError(w, r, "saving favorites failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.FavoriteToggleResponse{
		Label:    input.Label,
		Favorite: saved,
		Labels:   h.favorites.List(),
	})
}
