package interfaces

import (
	"context"

	"github.com/ternarybob/respondeo/internal/models"
)

// Chunker splits raw document text into overlapping segments.
type Chunker interface {
	// Split returns the ordered chunk sequence for text. Requires
	// 0 < overlap < size. Empty or whitespace-only text yields ErrEmptyInput.
	Split(text string, size, overlap int) ([]models.Chunk, error)
}

// Embedder wraps an EmbeddingProvider with the pipeline's output guarantees:
// one vector per input in input order, uniform dimension matching the
// configured index dimension.
type Embedder interface {
	EmbedChunks(ctx context.Context, chunks []models.Chunk) ([][]float32, error)
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	Dimension() int
}

// Retriever fetches the top-K stored passages most relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]models.SearchResult, error)
}

// Generator composes a grounded prompt from retrieved passages and produces a
// cited answer.
type Generator interface {
	Generate(ctx context.Context, question string, passages []string) (string, error)
}

// IntentClassifier maps a free-text query into the closed intent set. It
// never fails: classification errors collapse to IntentUnknown.
type IntentClassifier interface {
	Classify(ctx context.Context, query string) models.Intent
}

// ToolDispatcher executes the workflow for a classified intent and normalizes
// the result into a tagged ToolOutput. It never fails: collaborator errors
// collapse to the error variant.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, intent models.Intent, query string) models.ToolOutput
}

// IndexingService runs the indexing pipeline: chunk, embed, upsert.
type IndexingService interface {
	IndexDocument(ctx context.Context, text string) (*models.IndexResult, error)
}
