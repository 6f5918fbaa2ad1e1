// Package favorites manages the persisted list of favorite location labels.
package favorites

import "context"

// StorageKey is the fixed key the favorites list is stored under.
const StorageKey = "weatherFavorites"

// Repository is the injectable persistence boundary for the favorites list.
// The list is read once at startup and rewritten in full on every change;
// implementations never see partial updates.
type Repository interface {
	// Load returns the stored labels in order. A missing record yields an
	// empty list, not an error.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the stored list wholesale.
	Save(ctx context.Context, labels []string) error
}
