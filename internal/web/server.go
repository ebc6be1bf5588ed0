// Package web provides the HTTP server and JSON handlers for the catalog
// admin. The handlers are thin glue: they shape requests into batches, run
// the pipeline, and render the result; every rule lives in internal/core.
package web

import (
	"context"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pcmon/catalog/internal/config"
	"github.com/pcmon/catalog/internal/core"
	"github.com/pcmon/catalog/internal/database"
	"github.com/pcmon/catalog/internal/web/middleware"
)

// Server is the HTTP server for the catalog admin application.
type Server struct {
	pipeline *core.Service
	store    *database.Store
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server wired to the pipeline service and store.
func NewServer(pipeline *core.Service, store *database.Store, cfg *config.Config) *Server {
	s := &Server{
		pipeline: pipeline,
		store:    store,
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/tables", s.handleListTables)
		r.Get("/summary", s.handleSummary)

		r.Route("/table/{tableKey}", func(r chi.Router) {
			r.Get("/", s.handleFetchTable)
			r.Post("/", s.handleSaveTable)
			r.Post("/import", s.handleImportCSV)
			r.Get("/export", s.handleExportTable)
			r.Post("/delete", s.handleDeleteRows)
			r.Post("/reset", s.handleResetTable)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Handler exposes the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
