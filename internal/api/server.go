// Package api exposes the HTTP interface for the scout service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chemscout/msds-scout/internal/scout"
)

// Scouter runs one crawl-and-verify pass for an identifier.
type Scouter interface {
	Scout(ctx context.Context, id scout.Identifier) (*scout.Report, error)
}

// Server wires HTTP handlers to the scout orchestrator.
type Server struct {
	router  chi.Router
	scouter Scouter
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(scouter Scouter, logger *zap.Logger) *Server {
	s := &Server{
		scouter: scouter,
		logger:  logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))

	r.Get("/", s.home)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/scout/{identifier}", s.runScout)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) home(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Scout Crawler API"})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// runScout classifies the path parameter as a CAS number or free-text name
// and runs the crawl. Missing input is the only client error; crawl-phase
// failures are absorbed and surface only as a smaller or empty report.
func (s *Server) runScout(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "identifier")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	id := scout.ParseIdentifier(raw)

	report, err := s.scouter.Scout(r.Context(), id)
	switch {
	case errors.Is(err, scout.ErrNoIdentifier):
		s.writeError(w, http.StatusBadRequest, "no input provided")
		return
	case err != nil:
		s.logger.Error("scout failed", zap.String("identifier", raw), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "scout failed")
		return
	}
	s.writeJSON(w, http.StatusOK, report.Entries())
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
