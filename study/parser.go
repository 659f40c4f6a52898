package study

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BaSui01/studybuddy/types"
	"go.uber.org/zap"
)

// ParseOutcome 标记响应解析的三种结局.
// 生成后端返回的是非结构化文本，理应包含一个 JSON 数组但没有任何保证；
// 三种结局必须对调用方可区分：真实数据 / 后端产出了垃圾 / 后端没有产出结构化内容.
type ParseOutcome string

const (
	// OutcomeParsed 成功解码出记录.
	OutcomeParsed ParseOutcome = "parsed"
	// OutcomeMalformed 找到了括号对但内容无法解码，返回错误占位记录.
	OutcomeMalformed ParseOutcome = "malformed"
	// OutcomeNoPayload 没有括号对，返回通用占位记录（非错误标记）.
	OutcomeNoPayload ParseOutcome = "no_payload"
)

// ParseResult 带标记的解析结果. 调用方按 Outcome 分支，
// 而不是靠检查内容推断是否降级.
type ParseResult[T any] struct {
	Records []T          `json:"records"`
	Outcome ParseOutcome `json:"outcome"`
	Raw     string       `json:"-"`
	Err     error        `json:"-"`
}

// Degraded reports whether the result is placeholder content.
func (r *ParseResult[T]) Degraded() bool {
	return r.Outcome != OutcomeParsed
}

// extractArray 在文本中定位第一个 '[' 和最后一个 ']'，
// 返回含括号的子串. 没有合法括号对时 ok 为 false.
func extractArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < 0 || start >= end {
		return "", false
	}
	return text[start : end+1], true
}

// parseArray 解析状态机的核心：定位括号 → 尝试 JSON 解码.
// 自身从不返回 error；失败信息编码在 Outcome 和 Err 字段里.
func parseArray[T any](raw string) ParseResult[T] {
	jsonStr, ok := extractArray(raw)
	if !ok {
		return ParseResult[T]{Outcome: OutcomeNoPayload, Raw: raw}
	}

	var records []T
	if err := json.Unmarshal([]byte(jsonStr), &records); err != nil {
		return ParseResult[T]{
			Outcome: OutcomeMalformed,
			Raw:     raw,
			Err:     fmt.Errorf("decode JSON array: %w", err),
		}
	}

	return ParseResult[T]{Records: records, Outcome: OutcomeParsed, Raw: raw}
}

// ====== 测验题解析 ======

// ParseQuizQuestions 从生成文本中提取测验题.
// 软校验：结构不完整的单条记录被丢弃并记录日志，不会让整批失败；
// 解码成功但全部被丢弃时同样降级为错误占位.
func ParseQuizQuestions(raw, topic string, logger *zap.Logger) ParseResult[types.QuizQuestion] {
	if logger == nil {
		logger = zap.NewNop()
	}

	res := parseArray[types.QuizQuestion](raw)
	switch res.Outcome {
	case OutcomeParsed:
		valid := make([]types.QuizQuestion, 0, len(res.Records))
		for i, q := range res.Records {
			if !q.Validate() {
				logger.Warn("dropping malformed quiz question",
					zap.Int("index", i),
					zap.String("topic", topic))
				continue
			}
			if !q.AnswerInOptions() {
				// 软不变量：保留记录，只记录警告.
				logger.Warn("quiz correct_answer not among options",
					zap.Int("index", i),
					zap.String("topic", topic))
			}
			valid = append(valid, q)
		}
		if len(res.Records) > 0 && len(valid) == 0 {
			res.Outcome = OutcomeMalformed
			res.Records = []types.QuizQuestion{errorQuizPlaceholder(topic)}
		} else {
			res.Records = valid
		}

	case OutcomeMalformed:
		logger.Warn("quiz response malformed, using error placeholder",
			zap.String("topic", topic),
			zap.Error(res.Err))
		res.Records = []types.QuizQuestion{errorQuizPlaceholder(topic)}

	case OutcomeNoPayload:
		logger.Info("quiz response had no JSON payload, using generic placeholder",
			zap.String("topic", topic))
		res.Records = []types.QuizQuestion{genericQuizPlaceholder(topic)}
	}

	return res
}

// genericQuizPlaceholder 后端没有产出结构化内容时的兜底题目.
func genericQuizPlaceholder(topic string) types.QuizQuestion {
	return types.QuizQuestion{
		Question:      fmt.Sprintf("What is %s?", topic),
		Options:       []string{"Option A", "Option B", "Option C", "Option D"},
		CorrectAnswer: "Option A",
		Explanation:   "Based on the provided content",
	}
}

// errorQuizPlaceholder 后端产出垃圾时的错误占位题目，对调用方明确可读为失败.
func errorQuizPlaceholder(topic string) types.QuizQuestion {
	return types.QuizQuestion{
		Question:      fmt.Sprintf("Error parsing quiz for %s", topic),
		Options:       []string{"Try again", "Check Gemini", "Verify content", "Contact support"},
		CorrectAnswer: "Try again",
		Explanation:   "There was an error generating the quiz",
	}
}

// ====== 闪卡解析 ======

// ParseFlashCards 从生成文本中提取闪卡，降级策略与测验题一致.
func ParseFlashCards(raw, topic string, logger *zap.Logger) ParseResult[types.FlashCard] {
	if logger == nil {
		logger = zap.NewNop()
	}

	res := parseArray[types.FlashCard](raw)
	switch res.Outcome {
	case OutcomeParsed:
		valid := make([]types.FlashCard, 0, len(res.Records))
		for i, c := range res.Records {
			if !c.Validate() {
				logger.Warn("dropping empty flash card",
					zap.Int("index", i),
					zap.String("topic", topic))
				continue
			}
			valid = append(valid, c)
		}
		if len(res.Records) > 0 && len(valid) == 0 {
			res.Outcome = OutcomeMalformed
			res.Records = []types.FlashCard{errorCardPlaceholder(topic)}
		} else {
			res.Records = valid
		}

	case OutcomeMalformed:
		logger.Warn("flash card response malformed, using error placeholder",
			zap.String("topic", topic),
			zap.Error(res.Err))
		res.Records = []types.FlashCard{errorCardPlaceholder(topic)}

	case OutcomeNoPayload:
		logger.Info("flash card response had no JSON payload, using generic placeholder",
			zap.String("topic", topic))
		res.Records = []types.FlashCard{genericCardPlaceholder(topic)}
	}

	return res
}

func genericCardPlaceholder(topic string) types.FlashCard {
	return types.FlashCard{
		Front: fmt.Sprintf("What is %s?", topic),
		Back:  "Based on the provided content",
	}
}

func errorCardPlaceholder(topic string) types.FlashCard {
	return types.FlashCard{
		Front: fmt.Sprintf("Error parsing flash cards for %s", topic),
		Back:  "There was an error generating the flash cards",
	}
}
