package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

// Service retrieves the chunks most similar to a query by embedding the
// query and delegating ranking to the vector store. Store scores are
// authoritative; no rescoring happens here.
type Service struct {
	embedder interfaces.Embedder
	store    interfaces.VectorStorage
	logger   arbor.ILogger
}

// NewService creates a retriever backed by the given embedder and store
func NewService(embedder interfaces.Embedder, store interfaces.VectorStorage, logger arbor.ILogger) interfaces.Retriever {
	return &Service{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Retrieve returns at most topK results sorted by descending similarity.
// An empty index yields an empty slice, not an error.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, interfaces.ErrInvalidQuery
	}
	if topK <= 0 {
		topK = 5
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.store.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	s.logger.Debug().
		Int("top_k", topK).
		Int("results", len(results)).
		Msg("Retrieved chunks for query")

	return results, nil
}
