package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the loading subsystem's health snapshot.
type Status struct {
	Online          bool   `json:"online"`
	Quality         string `json:"quality"`
	CachedResources int    `json:"cached_resources"`
	Status          string `json:"status"` // "healthy" or "degraded"
}

// StatusSource produces the current snapshot.
type StatusSource interface {
	Snapshot() Status
}

// Server provides HTTP endpoints for health monitoring.
type Server struct {
	source StatusSource
	server *http.Server
}

// NewServer creates a new health server.
func NewServer(source StatusSource, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		source: source,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.source.Snapshot()
	status.Status = "healthy"
	// Degraded is still serving: cached assets and placeholders keep the
	// game playable, so this never reports unavailable.
	if !status.Online || status.Quality == "poor" {
		status.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(status)
}
