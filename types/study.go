package types

import "strings"

// Chunk 文档块，检索的基本单位。
// ID 按插入顺序派生（chunk_0, chunk_1, ...），仅在单次索引生命周期内唯一。
type Chunk struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuizQuestion 单选测验题。
// CorrectAnswer 应当是 Options 中的一项，这是软不变量：
// 解析层负责校验，不得直接假设。
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Validate reports whether the question is structurally usable: a non-empty
// question text and exactly four non-empty options. A correct answer that is
// not one of the options is tolerated (soft invariant, logged by the caller).
func (q *QuizQuestion) Validate() bool {
	if strings.TrimSpace(q.Question) == "" {
		return false
	}
	if len(q.Options) != 4 {
		return false
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return false
		}
	}
	return true
}

// AnswerInOptions reports whether CorrectAnswer matches one of Options.
func (q *QuizQuestion) AnswerInOptions() bool {
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// FlashCard 闪卡。
type FlashCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Validate reports whether the card carries any content at all.
func (c *FlashCard) Validate() bool {
	return strings.TrimSpace(c.Front) != "" || strings.TrimSpace(c.Back) != ""
}
