package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

func openTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	db, err := NewBadgerDB(common.GetLogger(), &common.BadgerConfig{
		Path: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func record(id string, vector []float32, text string) models.IndexedRecord {
	return models.IndexedRecord{
		ID:        id,
		Vector:    vector,
		Text:      text,
		IndexedAt: time.Now(),
	}
}

func TestVectorStorage_UpsertAndQueryOrdering(t *testing.T) {
	db := openTestDB(t)
	store := NewVectorStorage(db, 3, 100, common.GetLogger())

	records := []models.IndexedRecord{
		record("chunk_a", []float32{1, 0, 0}, "exact match"),
		record("chunk_b", []float32{0.7, 0.7, 0}, "partial match"),
		record("chunk_c", []float32{0, 0, 1}, "orthogonal"),
	}

	inserted, err := store.Upsert(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	results, err := store.Query(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "chunk_a", results[0].ChunkID)
	assert.Equal(t, "exact match", results[0].Content)
	assert.InDelta(t, 1.0, results[0].Score, 0.001)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score,
			"results must be sorted by descending score")
	}
}

func TestVectorStorage_QueryTruncatesToTopK(t *testing.T) {
	db := openTestDB(t)
	store := NewVectorStorage(db, 3, 100, common.GetLogger())

	records := []models.IndexedRecord{
		record("chunk_a", []float32{1, 0, 0}, "a"),
		record("chunk_b", []float32{0.9, 0.1, 0}, "b"),
		record("chunk_c", []float32{0.8, 0.2, 0}, "c"),
		record("chunk_d", []float32{0, 1, 0}, "d"),
	}

	_, err := store.Upsert(context.Background(), records)
	require.NoError(t, err)

	results, err := store.Query(context.Background(), []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "chunk_a", results[0].ChunkID)
}

func TestVectorStorage_EmptyIndexReturnsEmptySlice(t *testing.T) {
	db := openTestDB(t)
	store := NewVectorStorage(db, 3, 100, common.GetLogger())

	results, err := store.Query(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestVectorStorage_UpsertRejectsDimensionMismatch(t *testing.T) {
	db := openTestDB(t)
	store := NewVectorStorage(db, 3, 100, common.GetLogger())

	records := []models.IndexedRecord{
		record("chunk_a", []float32{1, 0, 0}, "ok"),
		record("chunk_b", []float32{1, 0}, "wrong dimension"),
	}

	inserted, err := store.Upsert(context.Background(), records)
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrDimensionMismatch)
	assert.Equal(t, 1, inserted)
}

func TestVectorStorage_QueryRejectsDimensionMismatch(t *testing.T) {
	db := openTestDB(t)
	store := NewVectorStorage(db, 3, 100, common.GetLogger())

	_, err := store.Query(context.Background(), []float32{1, 0}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrDimensionMismatch)
}

func TestVectorStorage_UpsertBatchesLargeSets(t *testing.T) {
	db := openTestDB(t)
	store := NewVectorStorage(db, 3, 10, common.GetLogger())

	records := make([]models.IndexedRecord, 25)
	for i := range records {
		records[i] = record(common.NewChunkID(), []float32{1, float32(i), 0}, "chunk")
	}

	inserted, err := store.Upsert(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 25, inserted)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestVectorStorage_UpsertIsIdempotentPerID(t *testing.T) {
	db := openTestDB(t)
	store := NewVectorStorage(db, 3, 100, common.GetLogger())

	_, err := store.Upsert(context.Background(), []models.IndexedRecord{
		record("chunk_a", []float32{1, 0, 0}, "first"),
	})
	require.NoError(t, err)

	_, err = store.Upsert(context.Background(), []models.IndexedRecord{
		record("chunk_a", []float32{0, 1, 0}, "replaced"),
	})
	require.NoError(t, err)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	results, err := store.Query(context.Background(), []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "replaced", results[0].Content)
}
