// Package forecast provides weather snapshot retrieval and interpretation.
package forecast

import (
	"errors"
	"time"
)

// Forecast errors.
var (
	ErrProviderUnavailable = errors.New("forecast provider unavailable")
	ErrMalformedResponse   = errors.New("malformed forecast response")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Current holds the current conditions of a snapshot.
type Current struct {
	// TemperatureC is the air temperature in Celsius.
	TemperatureC float64

	// HumidityPct is relative humidity (0-100).
	HumidityPct float64

	// ApparentTemperatureC is the feels-like temperature in Celsius.
	ApparentTemperatureC float64

	// IsDay reports whether it is currently daytime at the location.
	IsDay bool

	// WeatherCode is the WMO weather interpretation code.
	WeatherCode int

	// WindSpeedKmh is the wind speed in km/h.
	WindSpeedKmh float64
}

// Daily holds parallel per-day arrays. Index 0 is today, index 1 is tomorrow.
type Daily struct {
	WeatherCodes []int
	TempMaxC     []float64
	TempMinC     []float64
}

// Snapshot is a complete weather payload for a coordinate. It is treated as an
// opaque value and replaced wholesale, never field-patched.
type Snapshot struct {
	// Location coordinates as echoed by the provider.
	Latitude  float64
	Longitude float64

	// Timezone is the provider-resolved IANA timezone identifier.
	Timezone string

	Current Current
	Daily   Daily

	// FetchedAt records when the snapshot was retrieved.
	FetchedAt time.Time
}

// Validate checks the snapshot invariants: a resolved timezone and daily
// arrays covering at least today and tomorrow with matching lengths.
func (s *Snapshot) Validate() error {
	if s.Timezone == "" {
		return ErrMalformedResponse
	}
	n := len(s.Daily.WeatherCodes)
	if n < 2 || len(s.Daily.TempMaxC) != n || len(s.Daily.TempMinC) != n {
		return ErrMalformedResponse
	}
	return nil
}

// ValidateCoordinates checks that a coordinate pair is on the globe.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
