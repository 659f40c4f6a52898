package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"time"
)

// LocalProvider 本地确定性嵌入器.
// 基于词哈希的词袋向量，L2 归一化。不调用任何外部服务，
// 用于离线开发和测试；同一文本总是产生同一向量。
type LocalProvider struct {
	dimensions int
}

// NewLocalProvider 创建本地嵌入器. dimensions <= 0 时使用 256.
func NewLocalProvider(dimensions int) *LocalProvider {
	if dimensions <= 0 {
		dimensions = 256
	}
	return &LocalProvider{dimensions: dimensions}
}

func (p *LocalProvider) Name() string    { return "local" }
func (p *LocalProvider) Dimensions() int { return p.dimensions }

// Embed 实现 Provider 接口.
func (p *LocalProvider) Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &EmbeddingResponse{
		Provider:   p.Name(),
		Model:      "bag-of-words",
		Embeddings: make([]EmbeddingData, 0, len(req.Input)),
		CreatedAt:  time.Now(),
	}

	for i, text := range req.Input {
		resp.Embeddings = append(resp.Embeddings, EmbeddingData{
			Index:     i,
			Embedding: p.embedText(text),
		})
	}

	return resp, nil
}

// embedText 把文本映射为归一化的词袋向量.
func (p *LocalProvider) embedText(text string) []float64 {
	vec := make([]float64, p.dimensions)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[int(h.Sum32())%p.dimensions] += 1.0
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		inv := 1.0 / math.Sqrt(norm)
		for i := range vec {
			vec[i] *= inv
		}
	}

	return vec
}
