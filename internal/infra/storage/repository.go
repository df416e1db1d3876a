package storage

import (
	"context"
	"errors"
)

// ErrPreferenceNotFound is returned when a preference key has never been
// set.
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceRepository persists small player preferences, such as the
// last successfully applied language code.
type PreferenceRepository interface {
	// Set stores a preference value, replacing any prior one.
	Set(ctx context.Context, key, value string) error

	// Get retrieves a preference value, or ErrPreferenceNotFound.
	Get(ctx context.Context, key string) (string, error)
}
