// Package server exposes the sprint tracker over HTTP. All handlers run
// under the registry lock: the entity graph is single-writer and every
// request, reads included, is serialized against it.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"strack/internal/github"
	"strack/internal/registry"
	"strack/internal/store"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server wraps HTTP handlers for the sprint API.
type Server struct {
	addr       string
	reg        *registry.Registry
	store      *store.Store
	issues     github.Provider
	storyLabel string
	logger     *slog.Logger
}

// New creates a new server instance. issues may be nil when no external
// tracker is configured; the issue endpoints then serve the mock set.
func New(addr string, reg *registry.Registry, st *store.Store, issues github.Provider, storyLabel string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if issues == nil {
		issues = github.MockProvider{}
	}
	if storyLabel == "" {
		storyLabel = github.DefaultStoryLabel
	}
	return &Server{
		addr:       addr,
		reg:        reg,
		store:      st,
		issues:     issues,
		storyLabel: storyLabel,
		logger:     logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr, "data_dir", s.store.Dir())
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return server.ListenAndServe()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
