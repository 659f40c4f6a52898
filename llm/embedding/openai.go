package embedding

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider 使用 OpenAI API 执行嵌入.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

// OpenAIConfig 配置 OpenAI 嵌入提供者.
type OpenAIConfig struct {
	APIKey     string `json:"api_key" yaml:"api_key"`
	BaseURL    string `json:"base_url" yaml:"base_url"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty"` // text-embedding-3-small
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

// NewOpenAIProvider 创建新的 OpenAI 嵌入提供者.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = string(openai.SmallEmbedding3)
	}
	if cfg.Dimensions == 0 {
		// text-embedding-3-small 默认维度
		cfg.Dimensions = 1536
		if cfg.Model == string(openai.LargeEmbedding3) {
			cfg.Dimensions = 3072
		}
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

func (p *OpenAIProvider) Name() string    { return "openai" }
func (p *OpenAIProvider) Dimensions() int { return p.dimensions }

// Embed 实现 Provider 接口.
func (p *OpenAIProvider) Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error) {
	if len(req.Input) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(model),
		Input: req.Input,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}

	out := &EmbeddingResponse{
		Provider:   p.Name(),
		Model:      model,
		Embeddings: make([]EmbeddingData, 0, len(resp.Data)),
		CreatedAt:  time.Now(),
	}
	for _, data := range resp.Data {
		vec := make([]float64, len(data.Embedding))
		for i, v := range data.Embedding {
			vec[i] = float64(v)
		}
		out.Embeddings = append(out.Embeddings, EmbeddingData{
			Index:     data.Index,
			Embedding: vec,
		})
	}

	return out, nil
}
