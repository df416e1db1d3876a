package memory

import (
	"context"
	"sync"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage"
)

// PreferenceRepo is the in-process PreferenceRepository. Values live for
// the process lifetime only; it is the default when no database or Redis
// is configured, and the workhorse for tests.
type PreferenceRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewPreferenceRepo creates an empty in-memory preference store.
func NewPreferenceRepo() *PreferenceRepo {
	return &PreferenceRepo{values: make(map[string]string)}
}

// Set stores a preference value.
func (r *PreferenceRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// Get retrieves a preference value.
func (r *PreferenceRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	val, ok := r.values[key]
	if !ok {
		return "", storage.ErrPreferenceNotFound
	}
	return val, nil
}
