package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

// Service wraps an EmbeddingProvider with the pipeline's output guarantees:
// exactly one vector per input, in input order, all of the configured
// dimension. Violations surface as errors; an empty embedding is never
// silently replaced with a zero vector.
type Service struct {
	provider  interfaces.EmbeddingProvider
	dimension int
	logger    arbor.ILogger
}

// NewService creates a new embedding service
func NewService(provider interfaces.EmbeddingProvider, dimension int, logger arbor.ILogger) interfaces.Embedder {
	return &Service{
		provider:  provider,
		dimension: dimension,
		logger:    logger,
	}
}

// EmbedChunks generates one embedding per chunk, in chunk order
func (s *Service) EmbedChunks(ctx context.Context, chunks []models.Chunk) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, interfaces.ErrEmptyInput
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	start := time.Now()
	vectors, err := s.provider.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}

	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d chunks produced %d vectors",
			interfaces.ErrDimensionMismatch, len(chunks), len(vectors))
	}

	for i, vector := range vectors {
		if len(vector) == 0 {
			return nil, interfaces.ErrEmptyEmbedding
		}
		if len(vector) != s.dimension {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, index expects %d",
				interfaces.ErrDimensionMismatch, i, len(vector), s.dimension)
		}
	}

	s.logger.Debug().
		Str("model", s.provider.ModelName()).
		Int("chunks", len(chunks)).
		Int("embedding_dim", s.dimension).
		Dur("duration", time.Since(start)).
		Msg("Embedded chunk batch")

	return vectors, nil
}

// EmbedQuery generates an embedding for a search query
func (s *Service) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vector, err := s.provider.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(vector) == 0 {
		return nil, interfaces.ErrEmptyEmbedding
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, index expects %d",
			interfaces.ErrDimensionMismatch, len(vector), s.dimension)
	}

	return vector, nil
}

// Dimension returns the configured embedding dimension
func (s *Service) Dimension() int {
	return s.dimension
}
