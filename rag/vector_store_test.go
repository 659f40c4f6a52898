package rag

import (
	"context"
	"fmt"
	"testing"

	"github.com/BaSui01/studybuddy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *InMemoryVectorStore {
	t.Helper()
	s := NewInMemoryVectorStore(zap.NewNop())
	require.NoError(t, s.Reset(context.Background(), "test_chunks"))
	return s
}

func chunk(id, text string) types.Chunk {
	return types.Chunk{ID: id, Text: text}
}

func TestVectorStore_AddAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Add(ctx,
		[]types.Chunk{chunk("chunk_0", "alpha"), chunk("chunk_1", "beta")},
		[][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestVectorStore_AddShapeMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Add(ctx, []types.Chunk{chunk("chunk_0", "alpha")}, [][]float64{{1, 0}, {0, 1}})

	require.Error(t, err)
	typed, ok := err.(*types.Error)
	require.True(t, ok)
	assert.Equal(t, types.ErrShapeMismatch, typed.Code)

	// 失败的 Add 不插入任何记录
	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVectorStore_AddEmptyEmbedding(t *testing.T) {
	s := newTestStore(t)

	err := s.Add(context.Background(), []types.Chunk{chunk("chunk_0", "alpha")}, [][]float64{{}})

	require.Error(t, err)
	typed, ok := err.(*types.Error)
	require.True(t, ok)
	assert.Equal(t, types.ErrShapeMismatch, typed.Code)
}

func TestVectorStore_AddDimensionMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, []types.Chunk{chunk("chunk_0", "alpha")}, [][]float64{{1, 0, 0}}))

	err := s.Add(ctx, []types.Chunk{chunk("chunk_1", "beta")}, [][]float64{{1, 0}})

	require.Error(t, err)
	typed, ok := err.(*types.Error)
	require.True(t, ok)
	assert.Equal(t, types.ErrShapeMismatch, typed.Code)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVectorStore_QueryRanksBySimilarity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx,
		[]types.Chunk{
			chunk("chunk_0", "about dogs"),
			chunk("chunk_1", "about cats"),
			chunk("chunk_2", "about birds"),
		},
		[][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0.9, 0.1, 0},
		}))

	texts, err := s.Query(ctx, []float64{1, 0, 0}, 2)

	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "about dogs", texts[0])
	assert.Equal(t, "about birds", texts[1])
}

func TestVectorStore_QueryTieBreaksByChunkID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// 相同向量 → 相同分数，按 ID 升序
	require.NoError(t, s.Add(ctx,
		[]types.Chunk{
			chunk("chunk_2", "third"),
			chunk("chunk_0", "first"),
			chunk("chunk_1", "second"),
		},
		[][]float64{{1, 1}, {1, 1}, {1, 1}}))

	texts, err := s.Query(ctx, []float64{1, 1}, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, texts)
}

func TestVectorStore_QueryClampsToRecordCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, []types.Chunk{chunk("chunk_0", "only")}, [][]float64{{1}}))

	texts, err := s.Query(ctx, []float64{1}, 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, texts)
}

func TestVectorStore_QueryEmptyIndex(t *testing.T) {
	s := newTestStore(t)

	texts, err := s.Query(context.Background(), []float64{1, 0}, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{}, texts)
}

func TestVectorStore_QueryZeroResults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, []types.Chunk{chunk("chunk_0", "x")}, [][]float64{{1}}))

	texts, err := s.Query(ctx, []float64{1}, 0)

	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestVectorStore_QueryDeterministic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	chunks := make([]types.Chunk, 20)
	embeddings := make([][]float64, 20)
	for i := range chunks {
		chunks[i] = chunk(fmt.Sprintf("chunk_%d", i), fmt.Sprintf("text %d", i))
		embeddings[i] = []float64{float64(i % 3), float64(i % 5), 1}
	}
	require.NoError(t, s.Add(ctx, chunks, embeddings))

	first, err := s.Query(ctx, []float64{1, 2, 1}, 5)
	require.NoError(t, err)
	second, err := s.Query(ctx, []float64{1, 2, 1}, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestVectorStore_ResetReplacesIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, []types.Chunk{chunk("chunk_0", "old")}, [][]float64{{1, 0}}))
	require.NoError(t, s.Reset(ctx, "test_chunks"))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Reset 后维度约束也被清除
	require.NoError(t, s.Add(ctx, []types.Chunk{chunk("chunk_0", "new")}, [][]float64{{1, 0, 0, 0}}))
}

func TestVectorStore_Sample(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx,
		[]types.Chunk{chunk("chunk_0", "a"), chunk("chunk_1", "b"), chunk("chunk_2", "c")},
		[][]float64{{1}, {2}, {3}}))

	texts, err := s.Sample(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, texts)

	all, err := s.Sample(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, all)

	none, err := s.Sample(ctx, -1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVectorStore_CanceledContext(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Reset(ctx, "c"))
	assert.Error(t, s.Add(ctx, nil, nil))
	_, err := s.Query(ctx, []float64{1}, 1)
	assert.Error(t, err)
	_, err = s.Count(ctx)
	assert.Error(t, err)
	_, err = s.Sample(ctx, 1)
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"dimension mismatch", []float64{1, 0}, []float64{1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
