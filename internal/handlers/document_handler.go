package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
)

// DocumentHandler handles document ingestion HTTP requests
type DocumentHandler struct {
	indexing interfaces.IndexingService
	config   *common.Config
	logger   arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	indexing interfaces.IndexingService,
	config *common.Config,
	logger arbor.ILogger,
) *DocumentHandler {
	return &DocumentHandler{
		indexing: indexing,
		config:   config,
		logger:   logger,
	}
}

// IndexRequest is the POST /api/documents request body
type IndexRequest struct {
	Text string `json:"text"`
}

// IndexHandler handles POST /api/documents requests
func (h *DocumentHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode index request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Text == "" {
		WriteError(w, http.StatusBadRequest, "Text field is required")
		return
	}
	if max := h.config.Pipeline.MaxDocumentChars; len(req.Text) > max {
		WriteError(w, http.StatusRequestEntityTooLarge, "Document exceeds the maximum allowed size")
		return
	}

	h.logger.Info().
		Int("document_chars", len(req.Text)).
		Msg("Processing index request")

	result, err := h.indexing.IndexDocument(context.Background(), req.Text)
	if err != nil {
		h.writeIndexError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"chunk_count":  result.ChunkCount,
		"record_count": result.RecordCount,
	})
}

func (h *DocumentHandler) writeIndexError(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("Failed to index document")

	if errors.Is(err, interfaces.ErrEmptyInput) {
		WriteError(w, http.StatusBadRequest, "Document text must not be empty")
		return
	}

	message := "Failed to index document"
	if !h.config.IsProduction() {
		message = message + ": " + err.Error()
	}
	WriteError(w, http.StatusInternalServerError, message)
}
