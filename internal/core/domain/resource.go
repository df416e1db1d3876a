package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType identifies the kind of asset a caller is requesting.
// It drives fallback classification when an identifier carries no
// recognizable marker.
type ResourceType string

const (
	TypeCityScene ResourceType = "city_scene"
	TypePortrait  ResourceType = "portrait"
	TypeCover     ResourceType = "cover"
	TypeMap       ResourceType = "map"
	TypeAudio     ResourceType = "audio"
	TypeData      ResourceType = "data"
)

// LoadState tracks the lifecycle of a single load cycle.
// Transitions are monotonic within one cycle: pending -> loaded or
// pending -> failed. A failed key may start a fresh cycle later.
type LoadState string

const (
	StatePending LoadState = "pending"
	StateLoaded  LoadState = "loaded"
	StateFailed  LoadState = "failed"
)

// LoadRecord is the authoritative outcome for one resource key.
// At most one record exists per key at any time.
type LoadRecord struct {
	Key         string
	State       LoadState
	Value       []byte
	LastUpdated time.Time
}

// Resource is the result of a load: either the fetched bytes or a
// degraded substitute from the fallback chain.
type Resource struct {
	ID          string
	Type        ResourceType
	Data        []byte
	Placeholder bool
}

// ResourceDescriptor names a resource for bulk preloading.
type ResourceDescriptor struct {
	ID   string       `yaml:"id"   json:"id"`
	Type ResourceType `yaml:"type" json:"type"`
}

// PreloadResult aggregates the outcome of a settle-all preload batch.
type PreloadResult struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
	Total        int `json:"total"`
}

// LoadingStateEvent is an outward notification about a load transition.
// It is broadcast fire-and-forget and never stored.
type LoadingStateEvent struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	State      LoadState `json:"state"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewLoadingStateEvent stamps a transition with an ID and timestamp.
func NewLoadingStateEvent(resourceID string, state LoadState) LoadingStateEvent {
	return LoadingStateEvent{
		ID:         uuid.NewString(),
		ResourceID: resourceID,
		State:      state,
		Timestamp:  time.Now(),
	}
}
