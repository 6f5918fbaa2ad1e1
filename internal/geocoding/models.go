// Package geocoding provides place-name to coordinate resolution.
package geocoding

import "errors"

// Geocoding errors.
var (
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
	ErrEmptyQuery          = errors.New("query must not be empty")
)

// Place is a single geocoding match for a free-text query.
// Places are produced fresh per response and never merged across responses.
type Place struct {
	// Name is the provider's display name for the place.
	Name string

	// AdminRegion is the first-level administrative region (optional).
	AdminRegion string

	// Country is the country name.
	Country string

	// Coordinates in decimal degrees.
	Latitude  float64
	Longitude float64
}
