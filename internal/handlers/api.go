package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
)

type APIHandler struct {
	llm    interfaces.LanguageModelProvider
	store  interfaces.VectorStorage
	logger arbor.ILogger
}

func NewAPIHandler(llm interfaces.LanguageModelProvider, store interfaces.VectorStorage) *APIHandler {
	return &APIHandler{
		llm:    llm,
		store:  store,
		logger: common.GetLogger(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.Build,
		"git_commit": common.GitCommit,
	})
}

// HealthHandler returns health check status including provider reachability
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	indexed, err := h.store.Count(context.Background())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Vector store health check failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "degraded",
			"error":  "vector store unavailable",
		})
		return
	}

	status := "ok"
	if err := h.llm.HealthCheck(context.Background()); err != nil {
		h.logger.Warn().Err(err).Msg("Language model health check failed")
		status = "degraded"
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          status,
		"indexed_records": indexed,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
