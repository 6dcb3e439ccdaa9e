package embeddings

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

// fakeProvider returns canned vectors or a canned error
type fakeProvider struct {
	vectors [][]float32
	query   []float32
	err     error
}

func (f *fakeProvider) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func (f *fakeProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.query, nil
}

func (f *fakeProvider) ModelName() string { return "fake-embedding-001" }

func testChunks(texts ...string) []models.Chunk {
	chunks := make([]models.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = models.Chunk{Index: i, Text: text}
	}
	return chunks
}

func TestEmbedChunks_OneVectorPerChunk(t *testing.T) {
	provider := &fakeProvider{
		vectors: [][]float32{{1, 0, 0}, {0, 1, 0}},
	}
	svc := NewService(provider, 3, common.GetLogger())

	vectors, err := svc.EmbedChunks(context.Background(), testChunks("first", "second"))

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1, 0, 0}, vectors[0])
	assert.Equal(t, []float32{0, 1, 0}, vectors[1])
}

func TestEmbedChunks_EmptyChunkList(t *testing.T) {
	svc := NewService(&fakeProvider{}, 3, common.GetLogger())

	_, err := svc.EmbedChunks(context.Background(), nil)
	assert.ErrorIs(t, err, interfaces.ErrEmptyInput)
}

func TestEmbedChunks_CountMismatchIsFatal(t *testing.T) {
	provider := &fakeProvider{
		vectors: [][]float32{{1, 0, 0}},
	}
	svc := NewService(provider, 3, common.GetLogger())

	_, err := svc.EmbedChunks(context.Background(), testChunks("first", "second"))
	assert.ErrorIs(t, err, interfaces.ErrDimensionMismatch)
}

func TestEmbedChunks_EmptyVectorNeverDefaulted(t *testing.T) {
	provider := &fakeProvider{
		vectors: [][]float32{{1, 0, 0}, {}},
	}
	svc := NewService(provider, 3, common.GetLogger())

	_, err := svc.EmbedChunks(context.Background(), testChunks("first", "second"))
	assert.ErrorIs(t, err, interfaces.ErrEmptyEmbedding)
}

func TestEmbedChunks_WrongDimension(t *testing.T) {
	provider := &fakeProvider{
		vectors: [][]float32{{1, 0, 0, 0}},
	}
	svc := NewService(provider, 3, common.GetLogger())

	_, err := svc.EmbedChunks(context.Background(), testChunks("first"))
	assert.ErrorIs(t, err, interfaces.ErrDimensionMismatch)
}

func TestEmbedChunks_ProviderErrorPropagates(t *testing.T) {
	upstream := interfaces.NewUpstreamError("embedding service", errors.New("503 unavailable"))
	provider := &fakeProvider{err: upstream}
	svc := NewService(provider, 3, common.GetLogger())

	_, err := svc.EmbedChunks(context.Background(), testChunks("first"))
	require.Error(t, err)
	assert.True(t, interfaces.IsUpstream(err))
}

func TestEmbedQuery(t *testing.T) {
	provider := &fakeProvider{query: []float32{0.5, 0.5, 0.5}}
	svc := NewService(provider, 3, common.GetLogger())

	vector, err := svc.EmbedQuery(context.Background(), "what is the capital of France?")
	require.NoError(t, err)
	assert.Len(t, vector, 3)
}

func TestEmbedQuery_EmptyVector(t *testing.T) {
	provider := &fakeProvider{query: []float32{}}
	svc := NewService(provider, 3, common.GetLogger())

	_, err := svc.EmbedQuery(context.Background(), "anything")
	assert.ErrorIs(t, err, interfaces.ErrEmptyEmbedding)
}
