// Package httpapi exposes the agents over HTTP for serve mode.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/remora-ai/remora/internal/agent"
	"github.com/remora-ai/remora/internal/agents"
	"github.com/remora-ai/remora/internal/session"
)

// Server routes agent runs and session administration. It owns no
// business logic: agent execution goes through the runner, session
// access through the service.
type Server struct {
	catalog *agents.Catalog
	runner  *agent.Runner
	service session.Service
	appName string
	metrics *Metrics

	router chi.Router
	server *http.Server
}

// Option adjusts a Server during construction.
type Option func(*Server)

// WithMetrics substitutes the metrics instruments, so serve mode can
// share a registry across components.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer wires the HTTP surface over the given catalog, runner and
// session backend.
func NewServer(catalog *agents.Catalog, runner *agent.Runner, service session.Service, appName string, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		runner:  runner,
		service: service,
		appName: appName,
		metrics: NewMetrics(),
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/agents", s.handleListAgents)
		r.Post("/agents/{name}/run", s.handleRunAgent)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Get("/{sessionID}", s.handleGetSession)
			r.Delete("/{sessionID}", s.handleDeleteSession)
		})
	})
}
