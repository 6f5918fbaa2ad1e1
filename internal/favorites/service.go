package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the favorites service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger
}

// Service owns the in-memory favorites list. The repository is read once at
// construction; every mutation rewrites the full list through it. Mutations
// are synchronous and user-triggered one at a time, so a single mutex is all
// the coordination this needs.
type Service struct {
	repo   Repository
	logger zerolog.Logger

	mu     sync.Mutex
	labels []string
}

// NewService creates a favorites service and loads the persisted list.
func NewService(ctx context.Context, cfg ServiceConfig) (*Service, error) {
	labels, err := cfg.Repository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	cfg.Logger.Info().Int("count", len(labels)).Msg("favorites loaded")

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		labels: labels,
	}, nil
}

// List returns the favorite labels in order.
func (s *Service) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Contains reports whether label is a favorite, by exact string match.
func (s *Service) Contains(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(label) >= 0
}

// Toggle appends label if absent or removes it if present, then persists the
// full list. It returns whether the label is a favorite afterwards.
func (s *Service) Toggle(ctx context.Context, label string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(label)
	if idx >= 0 {
		s.labels = append(s.labels[:idx], s.labels[idx+1:]...)
	} else {
		s.labels = append(s.labels, label)
	}

	if err := s.persist(ctx); err != nil {
		// Roll the in-memory list back so memory and storage agree.
		if idx >= 0 {
			s.labels = append(s.labels[:idx], append([]string{label}, s.labels[idx:]...)...)
		} else {
			s.labels = s.labels[:len(s.labels)-1]
		}
		return idx >= 0, err
	}

	return idx < 0, nil
}

// Replace swaps in a whole new list and persists it.
func (s *Service) Replace(ctx context.Context, labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.labels
	s.labels = make([]string, len(labels))
	copy(s.labels, labels)

	if err := s.persist(ctx); err != nil {
		s.labels = previous
		return err
	}
	return nil
}

func (s *Service) indexOf(label string) int {
	for i, l := range s.labels {
		if l == label {
			return i
		}
	}
	return -1
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.labels); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist favorites")
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}
