package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the favorites list as a single JSONB row keyed by
// the fixed storage key.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL favorites repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Load reads the stored labels. A missing row yields an empty list.
func (r *PostgresRepository) Load(ctx context.Context) ([]string, error) {
	query := `
		SELECT labels
		FROM favorites
		WHERE key = $1
	`

	var labelsJSON []byte
	err := r.pool.QueryRow(ctx, query, StorageKey).Scan(&labelsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	var labels []string
	if err := json.Unmarshal(labelsJSON, &labels); err != nil {
		return nil, fmt.Errorf("decoding favorites: %w", err)
	}
	return labels, nil
}

// Save upserts the full list under the fixed key.
func (r *PostgresRepository) Save(ctx context.Context, labels []string) error {
	query := `
		INSERT INTO favorites (key, labels, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			labels = EXCLUDED.labels,
			updated_at = EXCLUDED.updated_at
	`

	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, StorageKey, labelsJSON, time.Now())
	if err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
