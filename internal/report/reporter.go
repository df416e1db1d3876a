package report

import (
	"context"
	"log/slog"
)

// Category names the subsystem a failure came from.
type Category string

const (
	CategoryAsset Category = "asset"
	CategoryData  Category = "data"
)

// Context carries everything an error handler needs to present or replay
// a terminal failure.
type Context struct {
	AssetType    string
	AssetPath    string
	LanguageCode string
	// Retry replays the failed operation once, without its own retry
	// cycle. May be nil when the operation cannot be replayed.
	Retry func(ctx context.Context) error
}

// Reporter receives exactly one report per terminal failure. Reporter
// failures must never propagate back into the loader.
type Reporter interface {
	HandleError(category Category, err error, rctx Context)
}

// SlogReporter logs terminal failures. The game's real error handler
// replaces it in production wiring.
type SlogReporter struct {
	log *slog.Logger
}

// NewSlogReporter creates a reporter writing to the given logger.
func NewSlogReporter(log *slog.Logger) *SlogReporter {
	return &SlogReporter{log: log}
}

// HandleError logs the failure with its context.
func (r *SlogReporter) HandleError(category Category, err error, rctx Context) {
	attrs := []any{
		"category", category,
		"asset_type", rctx.AssetType,
		"asset_path", rctx.AssetPath,
		"error", err,
	}
	if rctx.LanguageCode != "" {
		attrs = append(attrs, "language", rctx.LanguageCode)
	}
	r.log.Error("Terminal load failure", attrs...)
}
