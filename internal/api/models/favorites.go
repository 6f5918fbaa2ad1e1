package models

// FavoritesList is the saved-location list in storage order.
type FavoritesList struct {
	Labels []string `json:"labels"`
}

// FavoriteToggleRequest adds or removes a single label.
type FavoriteToggleRequest struct {
	Label string `json:"label" validate:"required,min=1,max=160"`
}

// FavoriteToggleResponse reports the outcome of a toggle.
type FavoriteToggleResponse struct {
	Label    string   `json:"label"`
	Favorite bool     `json:"favorite"`
	Labels   []string `json:"labels"`
}
