package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

type fakeEmbedder struct {
	queryVector []float32
	err         error
}

func (f *fakeEmbedder) EmbedChunks(ctx context.Context, chunks []models.Chunk) ([][]float32, error) {
	return nil, errors.New("not used")
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.queryVector, nil
}

func (f *fakeEmbedder) Dimension() int {
	return len(f.queryVector)
}

type fakeStore struct {
	results    []models.SearchResult
	err        error
	lastVector []float32
	lastTopK   int
}

func (f *fakeStore) Upsert(ctx context.Context, records []models.IndexedRecord) (int, error) {
	return 0, errors.New("not used")
}

func (f *fakeStore) Query(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error) {
	f.lastVector = vector
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeStore) Dimension() int                     { return 3 }
func (f *fakeStore) Count(context.Context) (int, error) { return len(f.results), nil }
func (f *fakeStore) Close() error                       { return nil }

func TestRetrieve_ReturnsStoreResultsInOrder(t *testing.T) {
	store := &fakeStore{
		results: []models.SearchResult{
			{ChunkID: "chunk_1", Content: "first", Score: 0.95},
			{ChunkID: "chunk_2", Content: "second", Score: 0.80},
		},
	}
	retriever := NewService(&fakeEmbedder{queryVector: []float32{1, 0, 0}}, store, common.GetLogger())

	results, err := retriever.Retrieve(context.Background(), "what is the capital", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "chunk_1", results[0].ChunkID)
	assert.Equal(t, []float32{1, 0, 0}, store.lastVector)
	assert.Equal(t, 5, store.lastTopK)
}

func TestRetrieve_RejectsEmptyQuery(t *testing.T) {
	retriever := NewService(&fakeEmbedder{queryVector: []float32{1}}, &fakeStore{}, common.GetLogger())

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := retriever.Retrieve(context.Background(), query, 5)
		assert.ErrorIs(t, err, interfaces.ErrInvalidQuery)
	}
}

func TestRetrieve_DefaultsTopK(t *testing.T) {
	store := &fakeStore{}
	retriever := NewService(&fakeEmbedder{queryVector: []float32{1, 0, 0}}, store, common.GetLogger())

	_, err := retriever.Retrieve(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastTopK)
}

func TestRetrieve_EmptyIndexYieldsEmptyResults(t *testing.T) {
	store := &fakeStore{results: []models.SearchResult{}}
	retriever := NewService(&fakeEmbedder{queryVector: []float32{1, 0, 0}}, store, common.GetLogger())

	results, err := retriever.Retrieve(context.Background(), "query", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_PropagatesEmbedderFailure(t *testing.T) {
	upstream := interfaces.NewUpstreamError("embedding service", errors.New("quota exceeded"))
	retriever := NewService(&fakeEmbedder{err: upstream}, &fakeStore{}, common.GetLogger())

	_, err := retriever.Retrieve(context.Background(), "query", 5)
	require.Error(t, err)
	assert.True(t, interfaces.IsUpstream(err))
}
