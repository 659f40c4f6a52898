// Package study 组装 RAG 管线：分块 → 嵌入 → 索引（写路径），
// 检索 → 提示词 → 生成 → 解析（读路径）。
//
// 降级策略："always respond"：触及生成后端的流程从不向上抛错，
// 一律降级为可辨识的占位内容；只有 INVALID_REQUEST 和
// SHAPE_MISMATCH 允许让请求直接失败。
package study

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BaSui01/studybuddy/internal/metrics"
	"github.com/BaSui01/studybuddy/llm"
	"github.com/BaSui01/studybuddy/rag"
	"github.com/BaSui01/studybuddy/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NoTopicsSentinel 索引为空时 ListTopics 返回的哨兵值.
const NoTopicsSentinel = "Upload a document first to see topics"

// noDocumentsSentinel 索引读取失败时的兜底值.
const noDocumentsSentinel = "No documents available"

// Config 管线配置.
type Config struct {
	// Collection 索引集合名. 每次新文档上传整体替换该集合.
	Collection string `yaml:"collection" json:"collection"`

	// ContextResults 检索条数.
	ContextResults int `yaml:"context_results" json:"context_results"`

	// DefaultQuizQuestions / DefaultFlashCards 请求未指定数量时的默认值.
	DefaultQuizQuestions int `yaml:"default_quiz_questions" json:"default_quiz_questions"`
	DefaultFlashCards    int `yaml:"default_flash_cards" json:"default_flash_cards"`

	// EmbedBatchSize 单批嵌入的最大文本数.
	EmbedBatchSize int `yaml:"embed_batch_size" json:"embed_batch_size"`

	// EmbedParallelism 并发嵌入批次数上限.
	EmbedParallelism int `yaml:"embed_parallelism" json:"embed_parallelism"`

	// CacheTTL 生成结果缓存有效期.
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// DefaultConfig 返回默认管线配置.
func DefaultConfig() Config {
	return Config{
		Collection:           "doc_chunks",
		ContextResults:       rag.DefaultNResults,
		DefaultQuizQuestions: 5,
		DefaultFlashCards:    10,
		EmbedBatchSize:       64,
		EmbedParallelism:     4,
		CacheTTL:             10 * time.Minute,
	}
}

// AnswerCache 生成结果缓存的最小接口.
// 缓存失败只记录日志，绝不影响请求结果.
type AnswerCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Deps 管线依赖. Splitter/Store/Embedder/Provider 必填.
type Deps struct {
	Splitter  *rag.DocumentSplitter
	Store     rag.VectorStore
	Embedder  rag.Embedder
	Provider  llm.Provider
	Tokenizer rag.Tokenizer      // 可选：chunk token 统计
	Cache     AnswerCache        // 可选：答案缓存
	Metrics   *metrics.Collector // 可选
	Logger    *zap.Logger
}

// Service 管线编排器. 持有向量索引的所有权：
// 索引生命周期（Reset → Add → Query）由本结构统一管理，
// 不存在包级单例.
type Service struct {
	cfg       Config
	splitter  *rag.DocumentSplitter
	store     rag.VectorStore
	retriever *rag.Retriever
	embedder  rag.Embedder
	provider  llm.Provider
	tokenizer rag.Tokenizer
	cache     AnswerCache
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewService 创建管线编排器.
func NewService(cfg Config, deps Deps) (*Service, error) {
	if deps.Splitter == nil {
		return nil, fmt.Errorf("splitter is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("vector store is required")
	}
	if deps.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if deps.Provider == nil {
		return nil, fmt.Errorf("generation provider is required")
	}

	def := DefaultConfig()
	if cfg.Collection == "" {
		cfg.Collection = def.Collection
	}
	if cfg.ContextResults <= 0 {
		cfg.ContextResults = def.ContextResults
	}
	if cfg.DefaultQuizQuestions <= 0 {
		cfg.DefaultQuizQuestions = def.DefaultQuizQuestions
	}
	if cfg.DefaultFlashCards <= 0 {
		cfg.DefaultFlashCards = def.DefaultFlashCards
	}
	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = def.EmbedBatchSize
	}
	if cfg.EmbedParallelism <= 0 {
		cfg.EmbedParallelism = def.EmbedParallelism
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "study_service"))

	return &Service{
		cfg:       cfg,
		splitter:  deps.Splitter,
		store:     deps.Store,
		retriever: rag.NewRetriever(deps.Embedder, deps.Store, logger),
		embedder:  deps.Embedder,
		provider:  deps.Provider,
		tokenizer: deps.Tokenizer,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		logger:    logger,
	}, nil
}

// ====== 结果类型 ======

// IndexResult 索引结果.
type IndexResult struct {
	ChunkCount int    `json:"num_chunks"`
	Message    string `json:"message"`
}

// ExplainResult 概念讲解结果. 答案是自由文本，不做结构化解析；
// 后端失败时 Answer 含错误标记但请求本身成功.
type ExplainResult struct {
	Answer string `json:"answer"`
}

// QuizResult 测验生成结果.
type QuizResult struct {
	Questions []types.QuizQuestion `json:"questions"`
	Outcome   ParseOutcome         `json:"outcome"`
}

// FlashCardResult 闪卡生成结果.
type FlashCardResult struct {
	Cards   []types.FlashCard `json:"cards"`
	Outcome ParseOutcome      `json:"outcome"`
}

// ====== 写路径 ======

// IndexDocument 分块、嵌入并索引一篇文档.
// 策略为整体替换：先 Reset 再 Add，旧文档的所有 chunk ID 随之失效.
// 空文本是 InputError；嵌入后端不可用让本请求失败（写路径没有可降级的产物）.
func (s *Service) IndexDocument(ctx context.Context, text string) (*IndexResult, error) {
	start := time.Now()

	chunks := s.splitter.Split(text)
	if len(chunks) == 0 {
		return nil, types.NewError(types.ErrEmptyDocument, "document contains no extractable text").
			WithHTTPStatus(http.StatusBadRequest)
	}

	embeddings, err := s.embedDocuments(ctx, chunks)
	if err != nil {
		return nil, types.NewError(types.ErrProviderUnavailable, "embedding backend unavailable").
			WithCause(err).
			WithHTTPStatus(http.StatusServiceUnavailable).
			WithRetryable(true)
	}

	records := make([]types.Chunk, len(chunks))
	for i, chunk := range chunks {
		records[i] = types.Chunk{
			ID:   fmt.Sprintf("chunk_%d", i),
			Text: chunk,
		}
	}

	// 嵌入完成后才触碰索引锁.
	if err := s.store.Reset(ctx, s.cfg.Collection); err != nil {
		return nil, err
	}
	if err := s.store.Add(ctx, records, embeddings); err != nil {
		return nil, err
	}

	tokenCount := 0
	if s.tokenizer != nil {
		for _, chunk := range chunks {
			tokenCount += s.tokenizer.CountTokens(chunk)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordIndexing(len(chunks), tokenCount, time.Since(start))
	}

	s.logger.Info("document indexed",
		zap.Int("chunks", len(chunks)),
		zap.Int("tokens", tokenCount),
		zap.Duration("duration", time.Since(start)))

	return &IndexResult{
		ChunkCount: len(chunks),
		Message:    "Document processed and chunks stored for retrieval.",
	}, nil
}

// embedDocuments 分批并发嵌入，按位置写入预分配切片保证 chunk 与向量一一对应.
func (s *Service) embedDocuments(ctx context.Context, chunks []string) ([][]float64, error) {
	embeddings := make([][]float64, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.EmbedParallelism)

	for offset := 0; offset < len(chunks); offset += s.cfg.EmbedBatchSize {
		end := offset + s.cfg.EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		offset, end := offset, end

		g.Go(func() error {
			batch, err := s.embedder.EmbedDocuments(gctx, chunks[offset:end])
			if err != nil {
				return fmt.Errorf("embed batch [%d:%d]: %w", offset, end, err)
			}
			copy(embeddings[offset:], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}

// ====== 读路径 ======

// Explain 讲解概念. 生成输出原样返回，自由文本就是产品.
func (s *Service) Explain(ctx context.Context, question string) (*ExplainResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, types.NewError(types.ErrInvalidRequest, "question is empty").
			WithHTTPStatus(http.StatusBadRequest)
	}

	context := s.contextFor(ctx, question)
	prompt := renderExplainPrompt(context, question)
	answer := s.generateCached(ctx, "explain", prompt)

	return &ExplainResult{Answer: answer}, nil
}

// GenerateQuiz 生成测验.
func (s *Service) GenerateQuiz(ctx context.Context, topic string, numQuestions int) (*QuizResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, types.NewError(types.ErrInvalidRequest, "topic is empty").
			WithHTTPStatus(http.StatusBadRequest)
	}
	if numQuestions <= 0 {
		numQuestions = s.cfg.DefaultQuizQuestions
	}

	context := s.contextFor(ctx, topic)
	prompt := renderQuizPrompt(context, numQuestions)
	raw := s.generateCached(ctx, "quiz", prompt)

	res := ParseQuizQuestions(raw, topic, s.logger)
	if s.metrics != nil {
		s.metrics.RecordParseOutcome("quiz", string(res.Outcome))
	}

	return &QuizResult{Questions: res.Records, Outcome: res.Outcome}, nil
}

// GenerateFlashCards 生成闪卡.
func (s *Service) GenerateFlashCards(ctx context.Context, topic string, numCards int) (*FlashCardResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, types.NewError(types.ErrInvalidRequest, "topic is empty").
			WithHTTPStatus(http.StatusBadRequest)
	}
	if numCards <= 0 {
		numCards = s.cfg.DefaultFlashCards
	}

	context := s.contextFor(ctx, topic)
	prompt := renderFlashCardPrompt(context, numCards)
	raw := s.generateCached(ctx, "flashcards", prompt)

	res := ParseFlashCards(raw, topic, s.logger)
	if s.metrics != nil {
		s.metrics.RecordParseOutcome("flashcards", string(res.Outcome))
	}

	return &FlashCardResult{Cards: res.Records, Outcome: res.Outcome}, nil
}

// ListTopics 对已索引内容做尽力而为的主题摘要：
// 取最多 10 条记录的前 5 条，主题 = 前 5 个词（超过 10 字符才保留，
// 截断到 50 字符加省略号）. 空索引返回哨兵值.
func (s *Service) ListTopics(ctx context.Context) []string {
	docs, err := s.store.Sample(ctx, 10)
	if err != nil {
		s.logger.Warn("topic sampling failed", zap.Error(err))
		return []string{noDocumentsSentinel}
	}
	if len(docs) == 0 {
		return []string{NoTopicsSentinel}
	}

	if len(docs) > 5 {
		docs = docs[:5]
	}

	topics := make([]string, 0, len(docs))
	for _, doc := range docs {
		words := strings.Fields(doc)
		if len(words) > 5 {
			words = words[:5]
		}
		topic := strings.Join(words, " ")
		if len(topic) > 10 {
			// 按字符截断，避免把多字节字符切成半个
			if runes := []rune(topic); len(runes) > 50 {
				topic = string(runes[:50])
			}
			topics = append(topics, topic+"...")
		}
	}

	if len(topics) == 0 {
		return []string{NoTopicsSentinel}
	}
	return topics
}

// ====== 内部辅助 ======

// contextFor 检索接地上下文. 检索失败（嵌入后端不可用等）降级为空上下文：
// 调用方必须容忍空上下文的提示词.
func (s *Service) contextFor(ctx context.Context, query string) string {
	context, err := s.retriever.GetContext(ctx, query, s.cfg.ContextResults)
	if err != nil {
		s.logger.Warn("context retrieval failed, proceeding with empty context",
			zap.Error(err))
		return ""
	}
	return context
}

// generateCached 带缓存的生成调用. 错误文本不进缓存；
// 缓存读写失败只记录日志.
func (s *Service) generateCached(ctx context.Context, flow, prompt string) string {
	key := cacheKey(prompt)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			if s.metrics != nil {
				s.metrics.RecordCacheHit(flow)
			}
			return cached
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss(flow)
		}
	}

	start := time.Now()
	text := s.provider.Generate(ctx, prompt)
	degraded := llm.IsErrorText(text)

	if s.metrics != nil {
		s.metrics.RecordGeneration(s.provider.Name(), flow, degraded, time.Since(start))
	}

	if s.cache != nil && !degraded {
		if err := s.cache.Set(ctx, key, text, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("answer cache write failed", zap.Error(err))
		}
	}

	return text
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "answer:" + hex.EncodeToString(sum[:])
}
