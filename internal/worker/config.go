// Package worker provides background refresh jobs for saved locations.
package worker

import "time"

// RefreshConfig holds configuration for the favorites refresh job.
type RefreshConfig struct {
	// Concurrency is the number of labels refreshed in parallel.
	Concurrency int

	// Timeout bounds the geocode plus forecast fetch for one label.
	Timeout time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency: 4,
		Timeout:     30 * time.Second,
	}
}
