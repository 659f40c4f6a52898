package rag

import (
	"context"
	"testing"

	"github.com/BaSui01/studybuddy/llm/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderEmbedder_BridgesLocalProvider(t *testing.T) {
	e := NewProviderEmbedder(embedding.NewLocalProvider(32))
	ctx := context.Background()

	vec, err := e.EmbedQuery(ctx, "photosynthesis")
	require.NoError(t, err)
	assert.Len(t, vec, 32)
	assert.Equal(t, 32, e.Dimensions())

	vecs, err := e.EmbedDocuments(ctx, []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Len(t, vecs[0], 32)
}
