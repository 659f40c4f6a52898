package rag

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxChunkLength 默认块长度上限（字符数）。
const DefaultMaxChunkLength = 500

// SplitConfig 分块配置。
type SplitConfig struct {
	// MaxLength 块长度上限（字符数）。
	// 这是贪心装箱的目标值而非硬上限：单个超长段落不会被二次切分。
	MaxLength int `json:"max_length" yaml:"max_length"`
}

// DefaultSplitConfig 默认分块配置。
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{MaxLength: DefaultMaxChunkLength}
}

// DocumentSplitter 文档分块器。
// 按行分段、贪心装箱到 MaxLength。在段落边界分割，
// 优先保持句子完整而不是严格的大小上限。
type DocumentSplitter struct {
	config SplitConfig
	logger *zap.Logger
}

// NewDocumentSplitter 创建文档分块器。
func NewDocumentSplitter(config SplitConfig, logger *zap.Logger) *DocumentSplitter {
	if config.MaxLength <= 0 {
		config.MaxLength = DefaultMaxChunkLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentSplitter{
		config: config,
		logger: logger.With(zap.String("component", "splitter")),
	}
}

// Split 将原始文本分块。
// 算法：按换行分段、去空白、丢弃空段；依次累积段落，
// 当追加下一段会达到或超过 MaxLength 时，先落盘当前缓冲区，
// 再以该段开启新缓冲区。结尾的非空缓冲区同样落盘。
// 空输入返回空切片。超过 MaxLength 的单段自成一块，不报错。
func (s *DocumentSplitter) Split(text string) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return []string{}
	}

	chunks := make([]string, 0, len(paragraphs))
	current := ""

	for _, para := range paragraphs {
		if len(current)+len(para) < s.config.MaxLength {
			if current == "" {
				current = para
			} else {
				current += " " + para
			}
		} else {
			if current != "" {
				chunks = append(chunks, current)
			}
			current = para
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	s.logger.Debug("document split",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("chunks", len(chunks)),
		zap.Int("max_length", s.config.MaxLength))

	return chunks
}

// splitParagraphs 按换行切分并去掉空行。
func splitParagraphs(text string) []string {
	lines := strings.Split(text, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
