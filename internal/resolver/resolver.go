package resolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/forecast"
	"github.com/cloudmagazine/cloudmagazine/internal/geocoding"
)

// Geocoder resolves free-text place names to ranked candidate places.
// A limit of 0 leaves the result count to the provider. Zero matches is an
// empty slice with a nil error; errors mean transport or decoding failure.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]geocoding.Place, error)
	Name() string
}

// Forecaster fetches a weather snapshot for a coordinate.
type Forecaster interface {
	GetSnapshot(ctx context.Context, lat, lon float64) (*forecast.Snapshot, error)
	Name() string
}

// Config holds configuration for the resolver.
type Config struct {
	Geocoder   Geocoder
	Forecaster Forecaster

	// Logger for resolution operations.
	Logger zerolog.Logger

	// DefaultQuery is the known-good query used at startup and for reset
	// (default: "New York").
	DefaultQuery string

	// RequestTimeout bounds each remote call; expiry settles the operation
	// as failed (default: 10 seconds).
	RequestTimeout time.Duration

	// MaxCandidates caps the disambiguation list (default: 5).
	MaxCandidates int
}

// Resolver drives the location-resolution and weather-retrieval workflow.
//
// Operations may be invoked again before a prior one settles. Overlap is
// resolved with a generation counter: every operation bumps the generation
// when it enters the loading state, and its settled result commits only if
// that generation is still the latest. A stale result is discarded silently,
// so the most recently issued operation always wins regardless of response
// arrival order.
type Resolver struct {
	geocoder      Geocoder
	forecaster    Forecaster
	logger        zerolog.Logger
	defaultQuery  string
	timeout       time.Duration
	maxCandidates int

	mu         sync.Mutex
	generation uint64
	state      State
}

// New creates a new Resolver in the idle state.
func New(cfg Config) *Resolver {
	defaultQuery := cfg.DefaultQuery
	if defaultQuery == "" {
		defaultQuery = "New York"
	}

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	maxCandidates := cfg.MaxCandidates
	if maxCandidates == 0 {
		maxCandidates = 5
	}

	return &Resolver{
		geocoder:      cfg.Geocoder,
		forecaster:    cfg.Forecaster,
		logger:        cfg.Logger,
		defaultQuery:  defaultQuery,
		timeout:       timeout,
		maxCandidates: maxCandidates,
		state:         State{Phase: PhaseIdle},
	}
}

// State returns the current resolution state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.clone()
}

// DefaultQuery returns the configured known-good query.
func (r *Resolver) DefaultQuery() string {
	return r.defaultQuery
}

// ResolveByName resolves a place name on the best-effort single-result path:
// one top geocoding match commits straight to a forecast fetch, zero matches
// fall back to the broader candidate search. The returned state is how this
// invocation settled; it is also published unless a newer operation started
// in the meantime.
func (r *Resolver) ResolveByName(ctx context.Context, query string) (State, error) {
	if query == "" {
		return State{}, ErrEmptyQuery
	}

	gen := r.begin()

	places, err := r.search(ctx, query, 1)
	if err != nil {
		return r.commit(gen, failed(err)), nil
	}

	if len(places) == 0 {
		// Cheap top-match tier found nothing; widen to disambiguation.
		return r.searchCandidates(ctx, gen, query), nil
	}

	top := places[0]
	return r.fetchSnapshot(ctx, gen, top.Latitude, top.Longitude, top.Name, top.Country), nil
}

// ResolveCandidates resolves a place name on the explicit-search path: all
// matches are surfaced for user disambiguation, even a single one, truncated
// to the configured maximum in provider order.
func (r *Resolver) ResolveCandidates(ctx context.Context, query string) (State, error) {
	if query == "" {
		return State{}, ErrEmptyQuery
	}

	gen := r.begin()
	return r.searchCandidates(ctx, gen, query), nil
}

// ResolveByCoordinates fetches the forecast for a known-valid coordinate and
// commits the canonical label and snapshot atomically. It settles as resolved
// or failed, never disambiguating.
func (r *Resolver) ResolveByCoordinates(ctx context.Context, lat, lon float64, name, country string) (State, error) {
	if err := forecast.ValidateCoordinates(lat, lon); err != nil {
		return State{}, err
	}

	gen := r.begin()
	return r.fetchSnapshot(ctx, gen, lat, lon, name, country), nil
}

// ResolveDefault re-resolves the configured default query. This is the
// recovery action offered after a failure.
func (r *Resolver) ResolveDefault(ctx context.Context) (State, error) {
	return r.ResolveByName(ctx, r.defaultQuery)
}

// begin enters the loading state under a fresh generation. Any candidate
// list from a previous disambiguation is cleared here.
func (r *Resolver) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.state = State{Phase: PhaseLoading}
	return r.generation
}

// commit publishes a settled state if gen is still the latest generation,
// otherwise discards it. Returns the settled state either way.
func (r *Resolver) commit(gen uint64, s State) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		r.logger.Debug().
			Uint64("generation", gen).
			Uint64("latest", r.generation).
			Str("phase", string(s.Phase)).
			Msg("discarding stale resolution result")
		return s.clone()
	}

	r.state = s
	return s.clone()
}

// searchCandidates runs the broad geocoding tier and settles the operation.
func (r *Resolver) searchCandidates(ctx context.Context, gen uint64, query string) State {
	places, err := r.search(ctx, query, 0)
	if err != nil {
		return r.commit(gen, failed(err))
	}

	if len(places) == 0 {
		return r.commit(gen, State{Phase: PhaseFailed, Reason: NotFoundReason})
	}

	if len(places) > r.maxCandidates {
		places = places[:r.maxCandidates]
	}

	r.logger.Debug().
		Str("query", query).
		Int("candidates", len(places)).
		Msg("surfacing location candidates")

	return r.commit(gen, State{Phase: PhaseDisambiguating, Candidates: places})
}

// fetchSnapshot fetches the forecast and settles the operation. The label
// and snapshot land in the same state value; a failure replaces neither.
func (r *Resolver) fetchSnapshot(ctx context.Context, gen uint64, lat, lon float64, name, country string) State {
	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snapshot, err := r.forecaster.GetSnapshot(fetchCtx, lat, lon)
	if err != nil {
		r.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Str("provider", r.forecaster.Name()).
			Msg("forecast fetch failed")
		return r.commit(gen, failed(err))
	}

	location := &Location{
		Label:     CanonicalLabel(name, country),
		Latitude:  lat,
		Longitude: lon,
	}

	r.logger.Info().
		Str("location", location.Label).
		Str("timezone", snapshot.Timezone).
		Msg("location resolved")

	return r.commit(gen, State{Phase: PhaseResolved, Location: location, Weather: snapshot})
}

// search runs one geocoding call under the request timeout.
func (r *Resolver) search(ctx context.Context, query string, limit int) ([]geocoding.Place, error) {
	searchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	places, err := r.geocoder.Search(searchCtx, query, limit)
	if err != nil {
		r.logger.Warn().Err(err).
			Str("query", query).
			Str("provider", r.geocoder.Name()).
			Msg("geocoding lookup failed")
		return nil, err
	}
	return places, nil
}

// CanonicalLabel derives the committed display label for a place.
func CanonicalLabel(name, country string) string {
	return strings.ToUpper(name + ", " + country)
}

func failed(err error) State {
	return State{Phase: PhaseFailed, Reason: err.Error()}
}
