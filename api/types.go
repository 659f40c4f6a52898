package api

import (
	"github.com/BaSui01/studybuddy/types"
)

// =============================================================================
// 文档索引类型
// =============================================================================

// IndexRequest 原始文本索引请求。
// @Description 把一段原始文本作为学习文档建立索引
type IndexRequest struct {
	// 文档全文
	Text string `json:"text" binding:"required"`
}

// IndexResponse 索引结果响应。
type IndexResponse struct {
	// 文件名（上传接口才有）
	Filename string `json:"filename,omitempty" example:"notes.txt"`
	// 产生的 chunk 数
	NumChunks int `json:"num_chunks" example:"12"`
	// 处理结果消息
	Message string `json:"message" example:"Document processed and chunks stored for retrieval."`
}

// =============================================================================
// 讲解类型
// =============================================================================

// ExplainRequest 概念讲解请求。
type ExplainRequest struct {
	// 要讲解的问题或概念
	Question string `json:"question" binding:"required" example:"What is photosynthesis?"`
}

// ExplainResponse 概念讲解响应。
// 后端失败时 Answer 为错误描述文本，HTTP 状态仍是 200。
type ExplainResponse struct {
	// 讲解文本
	Answer string `json:"answer"`
}

// =============================================================================
// 测验类型
// =============================================================================

// QuizRequest 测验生成请求。
type QuizRequest struct {
	// 测验主题
	Topic string `json:"topic" binding:"required" example:"photosynthesis"`
	// 题目数量，缺省为 5
	NumQuestions int `json:"num_questions,omitempty" example:"5"`
}

// QuizResponse 测验生成响应。
type QuizResponse struct {
	// 题目列表. 解析失败时为占位记录
	Questions []types.QuizQuestion `json:"questions"`
	// 解析结局: parsed, malformed, no_payload
	Outcome string `json:"outcome" example:"parsed"`
}

// =============================================================================
// 闪卡类型
// =============================================================================

// FlashCardRequest 闪卡生成请求。
type FlashCardRequest struct {
	// 闪卡主题
	Topic string `json:"topic" binding:"required" example:"photosynthesis"`
	// 闪卡数量，缺省为 10
	NumCards int `json:"num_cards,omitempty" example:"10"`
}

// FlashCardResponse 闪卡生成响应。
type FlashCardResponse struct {
	// 闪卡列表. 解析失败时为占位记录
	FlashCards []types.FlashCard `json:"flash_cards"`
	// 解析结局: parsed, malformed, no_payload
	Outcome string `json:"outcome" example:"parsed"`
}

// =============================================================================
// 主题类型
// =============================================================================

// TopicsResponse 主题列表响应。
type TopicsResponse struct {
	// 主题摘要列表. 索引为空时为哨兵提示
	Topics []string `json:"topics"`
}
