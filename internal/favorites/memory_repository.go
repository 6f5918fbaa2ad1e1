package favorites

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository for testing.
type InMemoryRepository struct {
	mu     sync.RWMutex
	labels []string
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// NewInMemoryRepositoryWithLabels creates a new in-memory repository seeded
// with initial labels.
func NewInMemoryRepositoryWithLabels(labels []string) *InMemoryRepository {
	repo := &InMemoryRepository{labels: make([]string, len(labels))}
	copy(repo.labels, labels)
	return repo
}

// Load returns the stored labels in order.
func (r *InMemoryRepository) Load(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out, nil
}

// Save replaces the stored list wholesale.
func (r *InMemoryRepository) Save(_ context.Context, labels []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.labels = make([]string, len(labels))
	copy(r.labels, labels)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
