// Package resolver coordinates geocoding lookups and forecast fetches and
// owns the authoritative "current location + current weather" state.
package resolver

import (
	"errors"

	"github.com/cloudmagazine/cloudmagazine/internal/forecast"
	"github.com/cloudmagazine/cloudmagazine/internal/geocoding"
)

// Resolver errors. Remote failures never surface here: they settle the
// workflow in PhaseFailed instead. These cover caller mistakes only.
var (
	ErrEmptyQuery = errors.New("query must not be empty")
)

// NotFoundReason is the user-facing failure reason when both lookup tiers
// return zero matches.
const NotFoundReason = `LOCATION NOT FOUND. Try refining your search (e.g., "Paris, France").`

// Phase identifies which variant of the resolution state is active.
type Phase string

const (
	PhaseIdle           Phase = "IDLE"
	PhaseLoading        Phase = "LOADING"
	PhaseResolved       Phase = "RESOLVED"
	PhaseDisambiguating Phase = "DISAMBIGUATING"
	PhaseFailed         Phase = "FAILED"
)

// Location is a committed location. The label becomes authoritative only
// together with a successful forecast fetch for the same coordinate.
type Location struct {
	// Label is the canonical display label, "NAME, COUNTRY" upper-cased.
	Label string

	// Coordinates in decimal degrees, as geocoded.
	Latitude  float64
	Longitude float64
}

// State is the discriminated resolution state. Exactly one variant is active
// at a time; the whole value is replaced on every transition, so a location
// label is never paired with another location's weather.
type State struct {
	Phase Phase

	// Location and Weather are set when Phase is PhaseResolved.
	Location *Location
	Weather  *forecast.Snapshot

	// Candidates is set when Phase is PhaseDisambiguating, in provider
	// order, at most the configured maximum.
	Candidates []geocoding.Place

	// Reason is the human-readable failure reason when Phase is PhaseFailed.
	Reason string
}

// clone returns a copy safe to hand to callers. Snapshot and candidate
// contents are immutable by convention, so a shallow slice copy suffices.
func (s State) clone() State {
	out := s
	if s.Candidates != nil {
		out.Candidates = make([]geocoding.Place, len(s.Candidates))
		copy(out.Candidates, s.Candidates)
	}
	return out
}
