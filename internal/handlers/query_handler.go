package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
	"github.com/ternarybob/respondeo/internal/services/dispatch"
)

// QueryHandler handles query HTTP requests: classify, dispatch, compose
type QueryHandler struct {
	classifier interfaces.IntentClassifier
	dispatcher interfaces.ToolDispatcher
	config     *common.Config
	logger     arbor.ILogger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(
	classifier interfaces.IntentClassifier,
	dispatcher interfaces.ToolDispatcher,
	config *common.Config,
	logger arbor.ILogger,
) *QueryHandler {
	return &QueryHandler{
		classifier: classifier,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger,
	}
}

// QueryRequest is the POST /api/query request body
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryHandler handles POST /api/query requests. The response is always JSON
// with a success flag; pipeline failures surface as success=false messages
// rather than transport errors.
func (h *QueryHandler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode query request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query field is required")
		return
	}
	if max := h.config.Pipeline.MaxQuestionChars; len(query) > max {
		WriteError(w, http.StatusRequestEntityTooLarge, "Query exceeds the maximum allowed length")
		return
	}

	ctx := context.Background()
	intent := h.classifier.Classify(ctx, query)

	h.logger.Info().
		Str("intent", string(intent)).
		Int("query_chars", len(query)).
		Msg("Processing query request")

	output := h.dispatcher.Dispatch(ctx, intent, query)
	response := dispatch.ComposeResponse(output)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  output.Kind != models.ToolOutputError,
		"intent":   string(intent),
		"response": response,
		"output":   output,
	})
}
