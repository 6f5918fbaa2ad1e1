package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmagazine/cloudmagazine/internal/forecast"
	"github.com/cloudmagazine/cloudmagazine/internal/resolver"
)

// FavoritesLister supplies the saved labels to refresh.
type FavoritesLister interface {
	List() []string
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config     RefreshConfig
	Logger     zerolog.Logger
	Favorites  FavoritesLister
	Geocoder   resolver.Geocoder
	Forecaster resolver.Forecaster

	// OnSnapshot is called with each fresh snapshot. Optional.
	OnSnapshot func(label string, snapshot *forecast.Snapshot)
}

// RefreshJob re-fetches forecasts for every saved location, keeping upstream
// provider health current and surfacing labels that no longer resolve.
type RefreshJob struct {
	config     RefreshConfig
	logger     zerolog.Logger
	favorites  FavoritesLister
	geocoder   resolver.Geocoder
	forecaster resolver.Forecaster
	onSnapshot func(label string, snapshot *forecast.Snapshot)

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRefreshes    int64 `json:"totalRefreshes"`
	SuccessfulRefresh int64 `json:"successfulRefreshes"`
	FailedRefreshes   int64 `json:"failedRefreshes"`

	LastRefreshAt       time.Time     `json:"lastRefreshAt"`
	LastRefreshDuration time.Duration `json:"lastRefreshDurationNs"`
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Concurrency <= 0 {
		config = DefaultRefreshConfig()
	}

	return &RefreshJob{
		config:     config,
		logger:     cfg.Logger,
		favorites:  cfg.Favorites,
		geocoder:   cfg.Geocoder,
		forecaster: cfg.Forecaster,
		onSnapshot: cfg.OnSnapshot,
		metrics:    &RefreshMetrics{},
	}
}

// RefreshResult contains the result of one refresh run.
type RefreshResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalLabels int
	Successful  int
	Failed      int
	Errors      []RefreshError
}

// RefreshError represents a failed label refresh.
type RefreshError struct {
	Label string
	Error string
}

// Run refreshes every saved label through a bounded worker pool.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	labels := j.favorites.List()

	result := &RefreshResult{
		StartTime:   startTime,
		TotalLabels: len(labels),
	}

	j.logger.Info().
		Int("labels", len(labels)).
		Int("concurrency", j.config.Concurrency).
		Msg("starting favorites refresh job")

	labelsChan := make(chan string, len(labels))
	resultsChan := make(chan labelResult, len(labels))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, labelsChan, resultsChan)
		}()
	}

	for _, label := range labels {
		labelsChan <- label
	}
	close(labelsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for lr := range resultsChan {
		if lr.err == nil {
			result.Successful++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				Label: lr.label,
				Error: lr.err.Error(),
			})
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("favorites refresh job completed")

	return result
}

type labelResult struct {
	label string
	err   error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, labels <-chan string, results chan<- labelResult) {
	for label := range labels {
		select {
		case <-ctx.Done():
			results <- labelResult{label: label, err: ctx.Err()}
		default:
			results <- labelResult{label: label, err: j.refreshLabel(ctx, label)}
		}
	}
}

// refreshLabel re-resolves one saved label and fetches a fresh snapshot.
func (j *RefreshJob) refreshLabel(ctx context.Context, label string) error {
	refreshCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	places, err := j.geocoder.Search(refreshCtx, label, 1)
	if err != nil {
		return fmt.Errorf("geocoding %q: %w", label, err)
	}
	if len(places) == 0 {
		return fmt.Errorf("no geocoding match for %q", label)
	}

	top := places[0]
	snapshot, err := j.forecaster.GetSnapshot(refreshCtx, top.Latitude, top.Longitude)
	if err != nil {
		return fmt.Errorf("fetching forecast for %q: %w", label, err)
	}

	j.logger.Debug().
		Str("label", label).
		Str("timezone", snapshot.Timezone).
		Time("fetched_at", snapshot.FetchedAt).
		Msg("favorite refreshed")

	if j.onSnapshot != nil {
		j.onSnapshot(label, snapshot)
	}
	return nil
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
}

// Metrics returns a copy of the current refresh statistics.
func (j *RefreshJob) Metrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRefresh:   j.metrics.SuccessfulRefresh,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
	}
}
