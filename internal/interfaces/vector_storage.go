package interfaces

import (
	"context"

	"github.com/ternarybob/respondeo/internal/models"
)

// VectorStorage is a durable store of (id, vector, metadata) records with
// k-nearest-neighbour query support. Implementations apply upserts in
// sequential batches to respect external service limits; a failure partway
// through leaves a partially-indexed state, which is reported via the
// inserted count rather than rolled back.
type VectorStorage interface {
	// Upsert stores records and returns how many were inserted before any
	// failure
	Upsert(ctx context.Context, records []models.IndexedRecord) (int, error)

	// Query returns at most topK matches sorted by descending score. An
	// empty index yields an empty slice, not an error.
	Query(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error)

	// Dimension returns the configured vector dimension
	Dimension() int

	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)

	Close() error
}
