package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_Deterministic(t *testing.T) {
	p := NewLocalProvider(64)

	a, err := EmbedQuery(context.Background(), p, "photosynthesis converts light")
	require.NoError(t, err)
	b, err := EmbedQuery(context.Background(), p, "photosynthesis converts light")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestLocalProvider_L2Normalized(t *testing.T) {
	p := NewLocalProvider(128)

	vec, err := EmbedQuery(context.Background(), p, "the quick brown fox jumps over the lazy dog")
	require.NoError(t, err)

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestLocalProvider_EmptyTextIsZeroVector(t *testing.T) {
	p := NewLocalProvider(16)

	vec, err := EmbedQuery(context.Background(), p, "")
	require.NoError(t, err)

	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestLocalProvider_CaseInsensitive(t *testing.T) {
	p := NewLocalProvider(64)

	a, err := EmbedQuery(context.Background(), p, "Photosynthesis")
	require.NoError(t, err)
	b, err := EmbedQuery(context.Background(), p, "photosynthesis")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestLocalProvider_BatchPositional(t *testing.T) {
	p := NewLocalProvider(32)

	docs := []string{"first document", "second document", "third document"}
	vecs, err := EmbedDocuments(context.Background(), p, docs)
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	single, err := EmbedQuery(context.Background(), p, "second document")
	require.NoError(t, err)
	assert.Equal(t, single, vecs[1])
}

func TestLocalProvider_DefaultDimensions(t *testing.T) {
	p := NewLocalProvider(0)
	assert.Equal(t, 256, p.Dimensions())
	assert.Equal(t, "local", p.Name())
}

func TestLocalProvider_CanceledContext(t *testing.T) {
	p := NewLocalProvider(16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Embed(ctx, &EmbeddingRequest{Input: []string{"x"}})
	assert.Error(t, err)
}
