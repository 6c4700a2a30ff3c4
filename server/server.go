// Package server provides the HTTP admin surface for the caches owned by a
// registry: occupancy statistics and on-demand invalidation.
package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/krisalay/smart-cache/api"
	"github.com/krisalay/smart-cache/registry"
)

// Server contains the configured router and the registry it serves.
type Server struct {
	router   *chi.Mux
	registry *registry.Registry
	logger   zerolog.Logger
}

// New constructs a Server with middleware and routes configured.
func New(reg *registry.Registry, logger zerolog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		registry: reg,
		logger:   logger,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(s.requestLogger)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/caches", func(r chi.Router) {
		r.Get("/", s.handleListCaches)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleCacheStats)
			r.Delete("/", s.handleClearCache)
			r.Post("/cleanup", s.handleCleanup)
			r.Delete("/entries/{key}", s.handleDeleteEntry)
		})
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

// Response is the envelope of every reply: data on success, error otherwise.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; encoding errors are best effort.
	_ = json.NewEncoder(w).Encode(resp)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Data: data})
}

func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Response{Error: &Error{Code: "NOT_FOUND", Message: message}})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// cache resolves the {name} URL parameter, writing a 404 when unknown.
func (s *Server) cache(w http.ResponseWriter, r *http.Request) (api.Handle, bool) {
	name := urlParam(r, "name")
	h, found := s.registry.Get(name)
	if !found {
		notFound(w, "unknown cache "+name)
		return nil, false
	}
	return h, true
}

// urlParam returns the decoded value of a route parameter. chi matches on
// RawPath when the request has one, so a key like "a%2Fb" arrives still
// escaped; without RawPath the value is already decoded.
func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
