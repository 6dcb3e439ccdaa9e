package indexing

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

// Service runs the indexing pipeline end to end: chunk the document, embed
// each chunk, and upsert the records into the vector store.
type Service struct {
	chunker      interfaces.Chunker
	embedder     interfaces.Embedder
	store        interfaces.VectorStorage
	chunkSize    int
	chunkOverlap int
	logger       arbor.ILogger
}

// NewService creates an indexing service with chunking parameters from config
func NewService(
	chunker interfaces.Chunker,
	embedder interfaces.Embedder,
	store interfaces.VectorStorage,
	config *common.Config,
	logger arbor.ILogger,
) interfaces.IndexingService {
	return &Service{
		chunker:      chunker,
		embedder:     embedder,
		store:        store,
		chunkSize:    config.Pipeline.ChunkSize,
		chunkOverlap: config.Pipeline.ChunkOverlap,
		logger:       logger,
	}
}

// IndexDocument chunks, embeds, and stores a document. Chunk and vector
// counts must agree; a mismatch aborts before anything is written.
func (s *Service) IndexDocument(ctx context.Context, text string) (*models.IndexResult, error) {
	started := time.Now()

	chunks, err := s.chunker.Split(text, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk document: %w", err)
	}

	vectors, err := s.embedder.EmbedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d chunks but %d vectors",
			interfaces.ErrDimensionMismatch, len(chunks), len(vectors))
	}

	now := time.Now()
	records := make([]models.IndexedRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = models.IndexedRecord{
			ID:        common.NewChunkID(),
			Vector:    vectors[i],
			Text:      chunk.Text,
			IndexedAt: now,
		}
	}

	inserted, err := s.store.Upsert(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to store records: %w", err)
	}

	s.logger.Info().
		Int("chunks", len(chunks)).
		Int("records", inserted).
		Dur("duration", time.Since(started)).
		Msg("Indexed document")

	return &models.IndexResult{
		ChunkCount:  len(chunks),
		RecordCount: inserted,
	}, nil
}
