package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Documents (indexing pipeline)
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.IndexHandler)

	// API routes - Query (classify, dispatch, compose)
	mux.HandleFunc("/api/query", s.app.QueryHandler.QueryHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// JSON 404 for unmatched API paths
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api") {
			s.app.APIHandler.NotFoundHandler(w, r)
			return
		}
		http.NotFound(w, r)
	})

	return mux
}
