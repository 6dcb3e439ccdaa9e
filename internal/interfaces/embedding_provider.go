package interfaces

import "context"

// EmbeddingProvider maps text to fixed-dimension vectors via an external
// embedding service. Implementations must return exactly one vector per input
// text, in input order, all of the same nonzero dimension.
type EmbeddingProvider interface {
	// EmbedDocuments generates embeddings for a batch of chunk texts
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a search query (providers may
	// apply a different task hint than for documents)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the embedding model identifier
	ModelName() string
}
