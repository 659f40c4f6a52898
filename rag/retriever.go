package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultNResults 默认检索条数。
const DefaultNResults = 2

// Embedder 检索侧所需的最小嵌入能力。
// llm/embedding 的提供者通过 ProviderEmbedder 适配到该接口。
type Embedder interface {
	// EmbedQuery 为单条查询生成嵌入向量。
	EmbedQuery(ctx context.Context, query string) ([]float64, error)

	// EmbedDocuments 为一批文档生成嵌入向量，位置一一对应。
	EmbedDocuments(ctx context.Context, documents []string) ([][]float64, error)
}

// Retriever 把自然语言查询变成上下文字符串：
// 嵌入查询 → 向量检索 → 按相似度顺序用换行拼接 chunk 文本。
type Retriever struct {
	embedder Embedder
	store    VectorStore
	logger   *zap.Logger
}

// NewRetriever 创建检索器。
func NewRetriever(embedder Embedder, store VectorStore, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		logger:   logger.With(zap.String("component", "retriever")),
	}
}

// GetContext 返回查询的接地上下文。
// 索引为空时返回空字符串，调用方必须容忍空上下文。
// 注意：嵌入调用不持有索引锁。
func (r *Retriever) GetContext(ctx context.Context, query string, nResults int) (string, error) {
	if nResults <= 0 {
		nResults = DefaultNResults
	}

	embedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	texts, err := r.store.Query(ctx, embedding, nResults)
	if err != nil {
		return "", fmt.Errorf("query vector store: %w", err)
	}

	r.logger.Debug("context retrieved",
		zap.Int("requested", nResults),
		zap.Int("returned", len(texts)))

	return strings.Join(texts, "\n"), nil
}
