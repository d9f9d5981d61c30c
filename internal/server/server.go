// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the suggestion provider over HTTP. It is a thin
// proxy: every request is answered from one upstream lookup and nothing is
// kept between requests.
//
// See docs/ARCHITECTURE § Citation API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pdiddy/cite-editor/internal/httputil"
	"github.com/pdiddy/cite-editor/internal/search"
	"github.com/pdiddy/cite-editor/pkg/types"
)

// Error messages returned to clients.
const (
	msgMissingQuery  = `Query parameter "q" is required`
	msgUpstreamError = "Failed to fetch citation data from external API"
)

// DefaultShutdownTimeout bounds graceful shutdown when none is configured.
const DefaultShutdownTimeout = 5 * time.Second

// Searcher answers a citation query with ordered candidates.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.Candidate, error)
}

// Server routes the citation API.
type Server struct {
	searcher Searcher
	logger   *slog.Logger
	router   chi.Router
}

// New builds the router around searcher.
func New(searcher Searcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{searcher: searcher, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/citation", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		_ = httputil.WriteError(w, http.StatusBadRequest, msgMissingQuery)
		return
	}

	results, err := s.searcher.Search(r.Context(), q)
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		_ = httputil.WriteError(w, http.StatusBadRequest, msgMissingQuery)
		return
	case err != nil:
		s.logger.ErrorContext(r.Context(), "citation search failed",
			"query", q, "request_id", middleware.GetReqID(r.Context()), "error", err)
		_ = httputil.WriteError(w, http.StatusInternalServerError, msgUpstreamError)
		return
	}

	if results == nil {
		results = []types.Candidate{}
	}
	_ = httputil.WriteJSON(w, http.StatusOK, results)
}

// accessLog writes one structured line per request.
func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// Run serves h on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg types.ServerConfig, h http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
