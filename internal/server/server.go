// Package server exposes roster parsing, seat assignment and the chart store
// over a JSON HTTP API.
//
// Routes:
//
//	GET    /healthz
//	POST   /api/v1/roster/parse
//	POST   /api/v1/assign
//	GET    /api/v1/assignments/{id}
//	GET    /api/v1/charts
//	POST   /api/v1/charts
//	GET    /api/v1/charts/{id}
//	PUT    /api/v1/charts/{id}
//	DELETE /api/v1/charts/{id}
//	POST   /api/v1/charts/{id}/assign
//
// Failures are answered with {"error": {"code": ..., "message": ...}} and the
// status from [errors.HTTPStatus].
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/store"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Config wires a server to its backends.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger

	// Defaults seeds every assignment: delimiters and solver limits.
	// Request fields override it.
	Defaults pipeline.Options
}

// Server handles API requests. It is safe for concurrent use.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	router   chi.Router
}

// New builds the server and its routes. A nil logger uses log.Default().
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		runner:   runner,
		store:    cfg.Store,
		logger:   logger,
		defaults: cfg.Defaults,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/roster/parse", s.handleParseRoster)
		r.Post("/assign", s.handleAssign)
		r.Get("/assignments/{id}", s.handleGetAssignment)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleListCharts)
			r.Post("/", s.handleCreateChart)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChart)
				r.Put("/", s.handlePutChart)
				r.Delete("/", s.handleDeleteChart)
				r.Post("/assign", s.handleAssignChart)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
