package notify

import (
	"log/slog"
	"time"
)

// Severity grades a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Options controls how a notification is presented.
type Options struct {
	// Duration is how long a transient notification stays visible.
	Duration time.Duration
	// Persistent notifications stay until the condition clears.
	Persistent bool
}

// Sink receives user-facing advisories. It is purely observational: the
// loading subsystem never queries it for decisions.
type Sink interface {
	Notify(message string, severity Severity, opts Options)
}

// SlogSink logs notifications instead of displaying them. It stands in
// for the game's notification UI in headless runs and tests.
type SlogSink struct {
	log *slog.Logger
}

// NewSlogSink creates a sink writing to the given logger.
func NewSlogSink(log *slog.Logger) *SlogSink {
	return &SlogSink{log: log}
}

// Notify logs the notification with its presentation hints.
func (s *SlogSink) Notify(message string, severity Severity, opts Options) {
	attrs := []any{"severity", severity, "persistent", opts.Persistent}
	if opts.Duration > 0 {
		attrs = append(attrs, "duration", opts.Duration)
	}
	switch severity {
	case SeverityError:
		s.log.Error(message, attrs...)
	case SeverityWarning:
		s.log.Warn(message, attrs...)
	default:
		s.log.Info(message, attrs...)
	}
}
