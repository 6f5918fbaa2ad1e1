package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Scheduler periodically runs the favorites refresh job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *RefreshJob
	interval  time.Duration
	logger    zerolog.Logger
}

// NewScheduler creates a scheduler that runs job every interval.
func NewScheduler(job *RefreshJob, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		job:       job,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run fires immediately.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	_, err := s.scheduler.Every(interval).StartImmediately().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		result := s.job.Run(ctx)
		if result.Failed > 0 {
			for _, re := range result.Errors {
				s.logger.Warn().
					Str("label", re.Label).
					Str("error", re.Error).
					Msg("favorite refresh failed")
			}
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
