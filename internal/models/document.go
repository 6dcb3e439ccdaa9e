package models

import "time"

// Document is a raw text submitted for indexing. It exists only for the
// duration of the indexing request that created it.
type Document struct {
	Text string `json:"text"`
}

// Chunk is a bounded substring of a document, the unit of embedding and
// retrieval. Chunks are never mutated after creation.
type Chunk struct {
	// Index is the zero-based position of the chunk within its document
	Index int `json:"index"`

	// Offset is the character offset of the chunk start in the source text
	Offset int `json:"offset"`

	// Text is the chunk content, including any overlap with neighbours
	Text string `json:"text"`
}

// IndexedRecord is the unit stored in the vector index: a globally unique ID,
// the chunk's embedding, and the metadata needed to render a search hit.
// Records are created at indexing time and never updated.
type IndexedRecord struct {
	ID        string    `json:"id" badgerhold:"key"`
	Vector    []float32 `json:"vector"`
	Text      string    `json:"text"`
	IndexedAt time.Time `json:"indexed_at"`
}

// SearchResult is a single retrieval hit. Score is the store's similarity
// measure; higher means more relevant. Result slices are always ordered by
// descending score.
type SearchResult struct {
	ChunkID string  `json:"chunk_id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// IndexResult reports the outcome of an indexing request.
type IndexResult struct {
	ChunkCount  int `json:"chunk_count"`
	RecordCount int `json:"record_count"`
}
