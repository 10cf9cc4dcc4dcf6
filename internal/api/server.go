// Package api exposes the content service over HTTP.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ignite/jarvis-crm/internal/config"
	"github.com/ignite/jarvis-crm/internal/content"
)

// Server wraps the HTTP server and its route handlers.
type Server struct {
	cfg     *config.Config
	content *content.Service
	http    *http.Server
}

// NewServer creates an API server for the given content service.
func NewServer(cfg *config.Config, svc *content.Service) *Server {
	s := &Server{cfg: cfg, content: svc}
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router, for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	log.Printf("[api] listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
