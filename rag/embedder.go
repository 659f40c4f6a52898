// Config → 嵌入桥接层。
//
// 将 llm/embedding 的 Provider 适配到 rag.Embedder 接口，
// 消除 rag 包对具体嵌入后端的依赖。
package rag

import (
	"context"

	"github.com/BaSui01/studybuddy/llm/embedding"
)

// ProviderEmbedder 将 embedding.Provider 适配为 rag.Embedder。
type ProviderEmbedder struct {
	provider embedding.Provider
}

// NewProviderEmbedder 创建适配器。
func NewProviderEmbedder(provider embedding.Provider) *ProviderEmbedder {
	return &ProviderEmbedder{provider: provider}
}

// EmbedQuery 为单条查询生成嵌入向量。
func (e *ProviderEmbedder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	return embedding.EmbedQuery(ctx, e.provider, query)
}

// EmbedDocuments 为一批文档生成嵌入向量。
func (e *ProviderEmbedder) EmbedDocuments(ctx context.Context, documents []string) ([][]float64, error) {
	return embedding.EmbedDocuments(ctx, e.provider, documents)
}

// Dimensions 返回底层提供者的输出维度。
func (e *ProviderEmbedder) Dimensions() int {
	return e.provider.Dimensions()
}
