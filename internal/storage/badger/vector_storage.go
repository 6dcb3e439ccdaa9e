package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
	"github.com/viant/vec/search"
)

// VectorStorage implements the VectorStorage interface over Badger. Records
// are persisted via badgerhold; queries run a full cosine-similarity scan,
// which is adequate for a private document collection.
type VectorStorage struct {
	db        *BadgerDB
	dimension int
	batchSize int
	logger    arbor.ILogger
}

// NewVectorStorage creates a new Badger-backed vector store
func NewVectorStorage(db *BadgerDB, dimension, batchSize int, logger arbor.ILogger) interfaces.VectorStorage {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &VectorStorage{
		db:        db,
		dimension: dimension,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Upsert stores records in sequential batches. A failure partway through
// reports the number already inserted; earlier batches are not rolled back.
func (s *VectorStorage) Upsert(ctx context.Context, records []models.IndexedRecord) (int, error) {
	inserted := 0

	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}

		for _, record := range records[start:end] {
			if err := ctx.Err(); err != nil {
				return inserted, interfaces.NewUpstreamError("vector store", err)
			}
			if record.ID == "" {
				return inserted, fmt.Errorf("indexed record requires an ID")
			}
			if len(record.Vector) != s.dimension {
				return inserted, fmt.Errorf("%w: record %s has dimension %d, index expects %d",
					interfaces.ErrDimensionMismatch, record.ID, len(record.Vector), s.dimension)
			}
			if err := s.db.Store().Upsert(record.ID, record); err != nil {
				return inserted, interfaces.NewUpstreamError("vector store",
					fmt.Errorf("failed to upsert record %s: %w", record.ID, err))
			}
			inserted++
		}

		s.logger.Debug().
			Int("batch_start", start).
			Int("batch_end", end).
			Int("inserted", inserted).
			Msg("Upserted record batch")
	}

	return inserted, nil
}

// Query returns at most topK records sorted by descending cosine similarity.
// An empty index yields an empty slice, not an error.
func (s *VectorStorage) Query(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, index expects %d",
			interfaces.ErrDimensionMismatch, len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 5
	}

	var records []models.IndexedRecord
	if err := s.db.Store().Find(&records, nil); err != nil {
		return nil, interfaces.NewUpstreamError("vector store", fmt.Errorf("scan failed: %w", err))
	}

	if len(records) == 0 {
		return []models.SearchResult{}, nil
	}

	query := search.Float32s(vector)
	queryMag := query.Magnitude()
	if queryMag == 0 {
		return nil, interfaces.ErrEmptyEmbedding
	}

	results := make([]models.SearchResult, 0, len(records))
	for _, record := range records {
		candidate := search.Float32s(record.Vector)
		mag := candidate.Magnitude()
		if mag == 0 {
			continue
		}
		distance := query.CosineDistanceWithMagnitudesNeon(record.Vector, queryMag, mag)
		results = append(results, models.SearchResult{
			ChunkID: record.ID,
			Content: record.Text,
			Score:   1 - float64(distance),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	s.logger.Debug().
		Int("candidates", len(records)).
		Int("returned", len(results)).
		Int("top_k", topK).
		Msg("Vector query complete")

	return results, nil
}

// Dimension returns the configured vector dimension
func (s *VectorStorage) Dimension() int {
	return s.dimension
}

// Count returns the number of stored records
func (s *VectorStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.IndexedRecord{}, nil)
	if err != nil {
		return 0, interfaces.NewUpstreamError("vector store", fmt.Errorf("count failed: %w", err))
	}
	return int(count), nil
}

// Close is a no-op; the shared connection is owned by the storage manager
func (s *VectorStorage) Close() error {
	return nil
}
