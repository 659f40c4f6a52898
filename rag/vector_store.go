package rag

import (
	"context"
	"math"
	"net/http"
	"sort"
	"sync"

	"github.com/BaSui01/studybuddy/types"
	"go.uber.org/zap"
)

// VectorStore 向量索引接口。
// 记录 = (chunk 文本, 嵌入向量)，按位置一一对应。
type VectorStore interface {
	// Reset 创建一个全新的空索引，替换同名旧索引。首次使用前必须调用。
	Reset(ctx context.Context, collection string) error

	// Add 插入记录。前置条件 len(chunks) == len(embeddings)，
	// 违反时返回 SHAPE_MISMATCH 且不插入任何记录。
	Add(ctx context.Context, chunks []types.Chunk, embeddings [][]float64) error

	// Query 返回与查询向量最相似的 nResults 条 chunk 文本，最相似在前。
	// 记录数不足时返回全部；空索引返回空切片，不报错。
	Query(ctx context.Context, embedding []float64, nResults int) ([]string, error)

	// Count 返回记录数。
	Count(ctx context.Context) (int, error)

	// Sample 返回最多 limit 条按插入顺序排列的 chunk 文本，用于主题摘要。
	Sample(ctx context.Context, limit int) ([]string, error)
}

// ====== 内存向量存储 ======

// indexRecord 索引的原子记录：chunk 与其嵌入不可分离。
type indexRecord struct {
	chunk     types.Chunk
	embedding []float64
}

// InMemoryVectorStore 内存向量存储。
// 并发纪律：Reset/Add 独占写锁，Query/Count/Sample 共享读锁。
// Reset 整体替换记录切片，进行中的查询要么命中旧快照要么命中新快照，
// 不会混合两代记录。
type InMemoryVectorStore struct {
	mu         sync.RWMutex
	collection string
	records    []indexRecord
	dimensions int
	logger     *zap.Logger
}

// NewInMemoryVectorStore 创建内存向量存储。
func NewInMemoryVectorStore(logger *zap.Logger) *InMemoryVectorStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryVectorStore{
		records: make([]indexRecord, 0),
		logger:  logger.With(zap.String("component", "vector_store")),
	}
}

// Reset 清空索引。旧记录的所有 chunk ID 随之失效。
func (s *InMemoryVectorStore) Reset(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection = collection
	s.records = make([]indexRecord, 0)
	s.dimensions = 0

	s.logger.Info("vector store reset", zap.String("collection", collection))
	return nil
}

// Add 插入记录。要么全部插入，要么（形状不匹配时）一条不插。
func (s *InMemoryVectorStore) Add(ctx context.Context, chunks []types.Chunk, embeddings [][]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(chunks) != len(embeddings) {
		return types.NewError(types.ErrShapeMismatch, "chunks and embeddings length mismatch").
			WithHTTPStatus(http.StatusInternalServerError)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 维度不变量：索引内所有嵌入维度一致。先整体校验再插入。
	dim := s.dimensions
	for _, emb := range embeddings {
		if len(emb) == 0 {
			return types.NewError(types.ErrShapeMismatch, "empty embedding vector").
				WithHTTPStatus(http.StatusInternalServerError)
		}
		if dim == 0 {
			dim = len(emb)
		} else if len(emb) != dim {
			return types.NewError(types.ErrShapeMismatch, "embedding dimensionality mismatch").
				WithHTTPStatus(http.StatusInternalServerError)
		}
	}

	// 复制到新切片再替换，保证进行中的 Query 快照一致。
	next := make([]indexRecord, 0, len(s.records)+len(chunks))
	next = append(next, s.records...)
	for i, chunk := range chunks {
		next = append(next, indexRecord{chunk: chunk, embedding: embeddings[i]})
	}
	s.records = next
	s.dimensions = dim

	s.logger.Info("records added to vector store",
		zap.Int("count", len(chunks)),
		zap.Int("total", len(s.records)),
		zap.Int("dimensions", dim))

	return nil
}

// Query 余弦相似度检索，降序排列；同分时按 chunk ID 升序，保证可复现。
func (s *InMemoryVectorStore) Query(ctx context.Context, embedding []float64, nResults int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 || nResults <= 0 {
		return []string{}, nil
	}

	type scored struct {
		record indexRecord
		score  float64
	}

	results := make([]scored, 0, len(s.records))
	for _, rec := range s.records {
		results = append(results, scored{
			record: rec,
			score:  cosineSimilarity(embedding, rec.embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].record.chunk.ID < results[j].record.chunk.ID
	})

	if nResults > len(results) {
		nResults = len(results)
	}

	texts := make([]string, 0, nResults)
	for _, r := range results[:nResults] {
		texts = append(texts, r.record.chunk.Text)
	}
	return texts, nil
}

// Count 返回记录数。
func (s *InMemoryVectorStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Sample 按插入顺序返回最多 limit 条 chunk 文本。
func (s *InMemoryVectorStore) Sample(ctx context.Context, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.records) {
		limit = len(s.records)
	}
	if limit < 0 {
		limit = 0
	}

	texts := make([]string, 0, limit)
	for _, rec := range s.records[:limit] {
		texts = append(texts, rec.chunk.Text)
	}
	return texts, nil
}

// ====== 相似度计算 ======

// cosineSimilarity 余弦相似度。维度不一致或零向量返回 0。
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
