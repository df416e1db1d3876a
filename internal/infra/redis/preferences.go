package redis

import (
	"context"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage"
)

// PreferenceRepo adapts the Redis client to the PreferenceRepository
// contract, sharing persisted preferences across processes.
type PreferenceRepo struct {
	client *Client
}

// NewPreferenceRepo creates a redis-backed preference store.
func NewPreferenceRepo(client *Client) *PreferenceRepo {
	return &PreferenceRepo{client: client}
}

// Set stores a preference value.
func (r *PreferenceRepo) Set(ctx context.Context, key, value string) error {
	return r.client.SetPreference(ctx, key, value)
}

// Get retrieves a preference value.
func (r *PreferenceRepo) Get(ctx context.Context, key string) (string, error) {
	val, ok, err := r.client.GetPreference(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", storage.ErrPreferenceNotFound
	}
	return val, nil
}
