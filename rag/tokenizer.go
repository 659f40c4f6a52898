package rag

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// Tokenizer 分词器接口，用于统计 chunk 与上下文的 token 数。
type Tokenizer interface {
	CountTokens(text string) int
}

// TiktokenTokenizer 基于 tiktoken 编码的分词器。
// 编码数据懒加载（首次使用时可能下载）；加载失败时
// 回退到字符估算并记录警告日志。
type TiktokenTokenizer struct {
	encoding string
	enc      *tiktoken.Tiktoken
	once     sync.Once
	initErr  error
	logger   *zap.Logger
}

// NewTiktokenTokenizer 创建基于 tiktoken 的分词器。
// encoding 为空时使用 "cl100k_base"。
func NewTiktokenTokenizer(encoding string, logger *zap.Logger) *TiktokenTokenizer {
	if encoding == "" {
		encoding = "cl100k_base"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TiktokenTokenizer{
		encoding: encoding,
		logger:   logger.With(zap.String("component", "tokenizer")),
	}
}

func (t *TiktokenTokenizer) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = err
			return
		}
		t.enc = enc
	})
	return t.initErr
}

// CountTokens 返回文本的 token 数。
// 编码不可用时回退到 len(text)/4 估算。
func (t *TiktokenTokenizer) CountTokens(text string) int {
	if err := t.init(); err != nil {
		t.logger.Warn("tiktoken encoding unavailable, falling back to estimate",
			zap.String("encoding", t.encoding),
			zap.Error(err))
		return len(text) / 4
	}
	return len(t.enc.Encode(text, nil, nil))
}

// EstimatorTokenizer 字符估算分词器（1 token ≈ 4 字符）。
// 不需要外部编码数据下载，用于测试和离线场景。
type EstimatorTokenizer struct{}

func (EstimatorTokenizer) CountTokens(text string) int {
	return len(text) / 4
}
