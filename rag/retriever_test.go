package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/BaSui01/studybuddy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubEmbedder 返回固定向量或固定错误。
type stubEmbedder struct {
	vec []float64
	err error
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	return s.vec, s.err
}

func (s *stubEmbedder) EmbedDocuments(ctx context.Context, documents []string) ([][]float64, error) {
	out := make([][]float64, len(documents))
	for i := range documents {
		out[i] = s.vec
	}
	return out, s.err
}

func TestRetriever_JoinsResultsWithNewline(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVectorStore(zap.NewNop())
	require.NoError(t, store.Reset(ctx, "test_chunks"))
	require.NoError(t, store.Add(ctx,
		[]types.Chunk{
			{ID: "chunk_0", Text: "first context"},
			{ID: "chunk_1", Text: "second context"},
			{ID: "chunk_2", Text: "irrelevant"},
		},
		[][]float64{{1, 0}, {0.9, 0.1}, {0, 1}}))

	r := NewRetriever(&stubEmbedder{vec: []float64{1, 0}}, store, zap.NewNop())

	got, err := r.GetContext(ctx, "query", 2)

	require.NoError(t, err)
	assert.Equal(t, "first context\nsecond context", got)
}

func TestRetriever_EmptyIndexReturnsEmptyString(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVectorStore(zap.NewNop())
	require.NoError(t, store.Reset(ctx, "test_chunks"))

	r := NewRetriever(&stubEmbedder{vec: []float64{1, 0}}, store, zap.NewNop())

	got, err := r.GetContext(ctx, "query", 2)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetriever_EmbedFailurePropagates(t *testing.T) {
	store := NewInMemoryVectorStore(zap.NewNop())
	require.NoError(t, store.Reset(context.Background(), "test_chunks"))

	r := NewRetriever(&stubEmbedder{err: errors.New("backend down")}, store, nil)

	_, err := r.GetContext(context.Background(), "query", 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed query")
}

func TestRetriever_DefaultNResults(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVectorStore(zap.NewNop())
	require.NoError(t, store.Reset(ctx, "test_chunks"))
	require.NoError(t, store.Add(ctx,
		[]types.Chunk{
			{ID: "chunk_0", Text: "a"},
			{ID: "chunk_1", Text: "b"},
			{ID: "chunk_2", Text: "c"},
		},
		[][]float64{{1}, {1}, {1}}))

	r := NewRetriever(&stubEmbedder{vec: []float64{1}}, store, zap.NewNop())

	got, err := r.GetContext(ctx, "query", 0)

	require.NoError(t, err)
	// nResults <= 0 回退到 DefaultNResults
	assert.Equal(t, "a\nb", got)
}
