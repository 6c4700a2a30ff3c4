package server

import (
	"net/http"
)

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	ok(w, map[string]any{
		"status": "healthy",
		"caches": len(s.registry.Names()),
	})
}

// handleListCaches handles GET /caches.
func (s *Server) handleListCaches(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.registry.Stats())
}

// handleCacheStats handles GET /caches/{name}.
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	h, found := s.cache(w, r)
	if !found {
		return
	}
	ok(w, h.Stats())
}

// handleClearCache handles DELETE /caches/{name}.
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	h, found := s.cache(w, r)
	if !found {
		return
	}
	h.Clear()
	s.logger.Info().Str("cache", h.Name()).Msg("cache cleared")
	ok(w, h.Stats())
}

// handleCleanup handles POST /caches/{name}/cleanup.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	h, found := s.cache(w, r)
	if !found {
		return
	}
	ok(w, map[string]any{"removed": h.Cleanup()})
}

// handleDeleteEntry handles DELETE /caches/{name}/entries/{key}.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	h, found := s.cache(w, r)
	if !found {
		return
	}
	key := urlParam(r, "key")
	if !h.Delete(key) {
		notFound(w, "unknown key "+key)
		return
	}
	ok(w, map[string]any{"deleted": key})
}
