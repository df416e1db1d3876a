package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage"
)

// PreferenceRepo persists preferences in PostgreSQL, surviving process
// restarts.
type PreferenceRepo struct {
	db *DB
}

// NewPreferenceRepo creates a postgres-backed preference store.
func NewPreferenceRepo(db *DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

// Set stores a preference value.
func (r *PreferenceRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}

// Get retrieves a preference value.
func (r *PreferenceRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return value, nil
}
