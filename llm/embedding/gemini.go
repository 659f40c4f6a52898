package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GeminiProvider 使用 Google Gemini API 执行嵌入.
// 注: Gemini 使用不同的端点格式: /models/{model}:batchEmbedContents
type GeminiProvider struct {
	*BaseProvider
}

// GeminiConfig 配置 Gemini 嵌入提供者.
type GeminiConfig struct {
	APIKey     string        `json:"api_key" yaml:"api_key"`
	BaseURL    string        `json:"base_url" yaml:"base_url"`
	Model      string        `json:"model,omitempty" yaml:"model,omitempty"` // gemini-embedding-001
	Dimensions int           `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultGeminiConfig 返回默认 Gemini 嵌入配置.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		Model:      "gemini-embedding-001",
		Dimensions: 768,
		Timeout:    30 * time.Second,
	}
}

// NewGeminiProvider 创建新的 Gemini 嵌入提供者.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	def := DefaultGeminiConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = def.Dimensions
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}

	return &GeminiProvider{
		BaseProvider: NewBaseProvider(BaseConfig{
			Name:       "gemini",
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Timeout:    cfg.Timeout,
		}),
	}
}

type geminiEmbedContent struct {
	Parts []geminiEmbedPart `json:"parts"`
}

type geminiEmbedPart struct {
	Text string `json:"text"`
}

type geminiEmbedRequest struct {
	Model   string             `json:"model"`
	Content geminiEmbedContent `json:"content"`
}

type geminiBatchEmbedRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiBatchEmbedResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
}

// Embed 实现 Provider 接口.
func (p *GeminiProvider) Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error) {
	if len(req.Input) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	batch := geminiBatchEmbedRequest{
		Requests: make([]geminiEmbedRequest, 0, len(req.Input)),
	}
	for _, text := range req.Input {
		batch.Requests = append(batch.Requests, geminiEmbedRequest{
			Model: "models/" + model,
			Content: geminiEmbedContent{
				Parts: []geminiEmbedPart{{Text: text}},
			},
		})
	}

	endpoint := fmt.Sprintf("/models/%s:batchEmbedContents", model)
	headers := map[string]string{"x-goog-api-key": p.apiKey}

	respBody, err := p.DoRequest(ctx, http.MethodPost, endpoint, batch, headers)
	if err != nil {
		return nil, err
	}

	var geminiResp geminiBatchEmbedResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	resp := &EmbeddingResponse{
		Provider:   p.Name(),
		Model:      model,
		Embeddings: make([]EmbeddingData, 0, len(geminiResp.Embeddings)),
		CreatedAt:  time.Now(),
	}
	for i, emb := range geminiResp.Embeddings {
		resp.Embeddings = append(resp.Embeddings, EmbeddingData{
			Index:     i,
			Embedding: emb.Values,
		})
	}

	return resp, nil
}
