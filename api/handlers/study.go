package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/BaSui01/studybuddy/api"
	"github.com/BaSui01/studybuddy/study"
	"github.com/BaSui01/studybuddy/types"
	"go.uber.org/zap"
)

// =============================================================================
// 📚 学习接口 Handler
// =============================================================================

// StudyService 处理器所需的管线能力.
type StudyService interface {
	IndexDocument(ctx context.Context, text string) (*study.IndexResult, error)
	Explain(ctx context.Context, question string) (*study.ExplainResult, error)
	GenerateQuiz(ctx context.Context, topic string, numQuestions int) (*study.QuizResult, error)
	GenerateFlashCards(ctx context.Context, topic string, numCards int) (*study.FlashCardResult, error)
	ListTopics(ctx context.Context) []string
}

// StudyHandler 学习接口处理器
type StudyHandler struct {
	service        StudyService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewStudyHandler 创建学习处理器
func NewStudyHandler(service StudyService, maxUploadBytes int64, logger *zap.Logger) *StudyHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &StudyHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// uploadExtensions 上传接口接受的纯文本扩展名
var uploadExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// HandleUpload 处理文档上传请求
// @Summary 上传学习文档
// @Description 上传纯文本文档并建立索引，替换之前的文档
// @Tags 文档
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文档文件 (.txt/.md)"
// @Success 200 {object} api.IndexResponse "索引结果"
// @Failure 400 {object} Response "无效请求"
// @Failure 415 {object} Response "不支持的文档类型"
// @Router /upload [post]
func (h *StudyHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		apiErr := types.NewError(types.ErrInvalidRequest, "missing file field").
			WithCause(err).
			WithHTTPStatus(http.StatusBadRequest)
		WriteError(w, apiErr, h.logger)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !uploadExtensions[ext] {
		apiErr := types.NewError(types.ErrUnsupportedDoc, "Only plain-text documents are supported.").
			WithHTTPStatus(http.StatusUnsupportedMediaType)
		WriteError(w, apiErr, h.logger)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		apiErr := types.NewError(types.ErrInvalidRequest, "failed to read uploaded file").
			WithCause(err).
			WithHTTPStatus(http.StatusBadRequest)
		WriteError(w, apiErr, h.logger)
		return
	}

	start := time.Now()
	res, err := h.service.IndexDocument(r.Context(), string(content))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("document uploaded",
		zap.String("filename", header.Filename),
		zap.Int("chunks", res.ChunkCount),
		zap.Duration("duration", time.Since(start)),
	)

	WriteSuccess(w, api.IndexResponse{
		Filename:  header.Filename,
		NumChunks: res.ChunkCount,
		Message:   res.Message,
	})
}

// HandleIndex 处理原始文本索引请求
// @Summary 索引原始文本
// @Description 把请求体中的文本作为学习文档建立索引
// @Tags 文档
// @Accept json
// @Produce json
// @Param request body api.IndexRequest true "索引请求"
// @Success 200 {object} api.IndexResponse "索引结果"
// @Failure 400 {object} Response "无效请求"
// @Router /index [post]
func (h *StudyHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req api.IndexRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	res, err := h.service.IndexDocument(r.Context(), req.Text)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, api.IndexResponse{
		NumChunks: res.ChunkCount,
		Message:   res.Message,
	})
}

// HandleExplain 处理概念讲解请求
// @Summary 讲解概念
// @Description 基于已索引文档讲解一个概念. 后端失败时返回错误描述文本，状态仍为 200
// @Tags 学习
// @Accept json
// @Produce json
// @Param request body api.ExplainRequest true "讲解请求"
// @Success 200 {object} api.ExplainResponse "讲解文本"
// @Failure 400 {object} Response "无效请求"
// @Router /explain [post]
func (h *StudyHandler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req api.ExplainRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	res, err := h.service.Explain(r.Context(), req.Question)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, api.ExplainResponse{Answer: res.Answer})
}

// HandleGenerateQuiz 处理测验生成请求
// @Summary 生成测验
// @Description 基于已索引文档生成多选题测验. 解析失败降级为占位记录
// @Tags 学习
// @Accept json
// @Produce json
// @Param request body api.QuizRequest true "测验请求"
// @Success 200 {object} api.QuizResponse "测验题目"
// @Failure 400 {object} Response "无效请求"
// @Router /generate_quiz [post]
func (h *StudyHandler) HandleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req api.QuizRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	res, err := h.service.GenerateQuiz(r.Context(), req.Topic, req.NumQuestions)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, api.QuizResponse{
		Questions: res.Questions,
		Outcome:   string(res.Outcome),
	})
}

// HandleGenerateFlashCards 处理闪卡生成请求
// @Summary 生成闪卡
// @Description 基于已索引文档生成闪卡. 解析失败降级为占位记录
// @Tags 学习
// @Accept json
// @Produce json
// @Param request body api.FlashCardRequest true "闪卡请求"
// @Success 200 {object} api.FlashCardResponse "闪卡列表"
// @Failure 400 {object} Response "无效请求"
// @Router /generate_flashcards [post]
func (h *StudyHandler) HandleGenerateFlashCards(w http.ResponseWriter, r *http.Request) {
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req api.FlashCardRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	res, err := h.service.GenerateFlashCards(r.Context(), req.Topic, req.NumCards)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, api.FlashCardResponse{
		FlashCards: res.Cards,
		Outcome:    string(res.Outcome),
	})
}

// HandleTopics 处理主题列表请求
// @Summary 列出主题
// @Description 返回已索引内容的主题摘要. 索引为空时返回哨兵提示
// @Tags 学习
// @Produce json
// @Success 200 {object} api.TopicsResponse "主题列表"
// @Router /topics [get]
func (h *StudyHandler) HandleTopics(w http.ResponseWriter, r *http.Request) {
	topics := h.service.ListTopics(r.Context())
	WriteSuccess(w, api.TopicsResponse{Topics: topics})
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

// handleServiceError 处理管线错误
func (h *StudyHandler) handleServiceError(w http.ResponseWriter, err error) {
	if typedErr, ok := err.(*types.Error); ok {
		WriteError(w, typedErr, h.logger)
		return
	}

	// 未知错误，包装为内部错误
	internalErr := types.NewError(types.ErrInternalError, "pipeline error").
		WithCause(err).
		WithRetryable(false)

	WriteError(w, internalErr, h.logger)
}
