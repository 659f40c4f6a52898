package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSplit_EmptyInput(t *testing.T) {
	s := NewDocumentSplitter(DefaultSplitConfig(), zap.NewNop())

	assert.Equal(t, []string{}, s.Split(""))
	assert.Equal(t, []string{}, s.Split("   \n\t\n  "))
}

func TestSplit_SingleParagraph(t *testing.T) {
	s := NewDocumentSplitter(DefaultSplitConfig(), zap.NewNop())

	chunks := s.Split("Photosynthesis is the process plants use to convert light into energy.")

	require.Len(t, chunks, 1)
	assert.Equal(t, "Photosynthesis is the process plants use to convert light into energy.", chunks[0])
}

func TestSplit_ShortParagraphsJoinedWithSpace(t *testing.T) {
	s := NewDocumentSplitter(DefaultSplitConfig(), zap.NewNop())

	chunks := s.Split("First paragraph.\n\nSecond paragraph.\nThird paragraph.")

	require.Len(t, chunks, 1)
	assert.Equal(t, "First paragraph. Second paragraph. Third paragraph.", chunks[0])
}

func TestSplit_TrimsWhitespacePerLine(t *testing.T) {
	s := NewDocumentSplitter(DefaultSplitConfig(), zap.NewNop())

	chunks := s.Split("  leading and trailing  \n\t tabs too \t")

	require.Len(t, chunks, 1)
	assert.Equal(t, "leading and trailing tabs too", chunks[0])
}

func TestSplit_BreaksAtMaxLength(t *testing.T) {
	s := NewDocumentSplitter(SplitConfig{MaxLength: 50}, zap.NewNop())

	para := strings.Repeat("word ", 6) // 30 chars
	text := strings.TrimSpace(para) + "\n" + strings.TrimSpace(para) + "\n" + strings.TrimSpace(para)

	chunks := s.Split(text)

	// 29 + 29 达到上限，每段自成一块
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.NotEmpty(t, c)
	}
}

func TestSplit_OversizeParagraphKeptWhole(t *testing.T) {
	s := NewDocumentSplitter(SplitConfig{MaxLength: 100}, zap.NewNop())

	oversize := strings.Repeat("x", 500)
	chunks := s.Split("short intro\n" + oversize + "\nshort outro")

	require.Len(t, chunks, 3)
	assert.Equal(t, "short intro", chunks[0])
	assert.Equal(t, oversize, chunks[1])
	assert.Equal(t, "short outro", chunks[2])
}

func TestSplit_BoundaryIsStrictlyLessThan(t *testing.T) {
	// len(current)+len(para) == MaxLength 时触发落盘
	s := NewDocumentSplitter(SplitConfig{MaxLength: 20}, zap.NewNop())

	chunks := s.Split(strings.Repeat("a", 10) + "\n" + strings.Repeat("b", 10))

	require.Len(t, chunks, 2)
}

func TestSplit_DefaultMaxLengthApplied(t *testing.T) {
	s := NewDocumentSplitter(SplitConfig{}, zap.NewNop())
	assert.Equal(t, DefaultMaxChunkLength, s.config.MaxLength)

	s = NewDocumentSplitter(SplitConfig{MaxLength: -5}, nil)
	assert.Equal(t, DefaultMaxChunkLength, s.config.MaxLength)
}

func TestSplit_RealisticDocument(t *testing.T) {
	s := NewDocumentSplitter(DefaultSplitConfig(), zap.NewNop())

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This paragraph describes one aspect of cellular respiration in moderate detail here.\n")
	}

	chunks := s.Split(sb.String())

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
}
