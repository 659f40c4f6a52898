package study

import (
	"testing"

	"github.com/BaSui01/studybuddy/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// 🧪 数组提取测试
// =============================================================================

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "bare array",
			text: `[{"front": "a", "back": "b"}]`,
			want: `[{"front": "a", "back": "b"}]`,
			ok:   true,
		},
		{
			name: "array wrapped in prose",
			text: "Here are your cards:\n[{\"front\": \"a\", \"back\": \"b\"}]\nEnjoy!",
			want: `[{"front": "a", "back": "b"}]`,
			ok:   true,
		},
		{
			name: "no brackets",
			text: "I cannot generate that.",
			ok:   false,
		},
		{
			name: "only opening bracket",
			text: "broken [ output",
			ok:   false,
		},
		{
			name: "closing before opening",
			text: "] then [",
			ok:   false,
		},
		{
			name: "empty string",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractArray(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// =============================================================================
// 🧪 测验题解析测试
// =============================================================================

func TestParseQuizQuestions_Parsed(t *testing.T) {
	raw := `Sure! Here is your quiz:
[{"question": "What is photosynthesis?", "options": ["A process", "A plant", "A cell", "A gas"], "correct_answer": "A process", "explanation": "Plants convert light to energy."}]
Let me know if you need more.`

	res := ParseQuizQuestions(raw, "photosynthesis", zap.NewNop())

	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.False(t, res.Degraded())
	require.Len(t, res.Records, 1)
	assert.Equal(t, "What is photosynthesis?", res.Records[0].Question)
	assert.Equal(t, "A process", res.Records[0].CorrectAnswer)
}

func TestParseQuizQuestions_Malformed(t *testing.T) {
	// 括号对存在但内容不是合法 JSON
	raw := `[{"question": "broken", "options": [}]`

	res := ParseQuizQuestions(raw, "biology", zap.NewNop())

	assert.Equal(t, OutcomeMalformed, res.Outcome)
	assert.True(t, res.Degraded())
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Error parsing quiz for biology", res.Records[0].Question)
	assert.Equal(t, "Try again", res.Records[0].CorrectAnswer)
	assert.Equal(t, []string{"Try again", "Check Gemini", "Verify content", "Contact support"}, res.Records[0].Options)
}

func TestParseQuizQuestions_NoPayload(t *testing.T) {
	raw := "I'm sorry, I can't produce a quiz right now."

	res := ParseQuizQuestions(raw, "chemistry", zap.NewNop())

	assert.Equal(t, OutcomeNoPayload, res.Outcome)
	assert.True(t, res.Degraded())
	require.Len(t, res.Records, 1)
	assert.Equal(t, "What is chemistry?", res.Records[0].Question)
	assert.Equal(t, "Option A", res.Records[0].CorrectAnswer)
	assert.Equal(t, "Based on the provided content", res.Records[0].Explanation)
}

func TestParseQuizQuestions_EmptyArrayStaysParsed(t *testing.T) {
	res := ParseQuizQuestions("[]", "physics", zap.NewNop())

	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Empty(t, res.Records)
}

func TestParseQuizQuestions_DropsInvalidRecords(t *testing.T) {
	// 第二条缺 options，被软校验丢弃，第一条保留
	raw := `[
		{"question": "Q1?", "options": ["a", "b", "c", "d"], "correct_answer": "a", "explanation": "e"},
		{"question": "Q2?", "options": [], "correct_answer": "x", "explanation": "e"}
	]`

	res := ParseQuizQuestions(raw, "topic", zap.NewNop())

	assert.Equal(t, OutcomeParsed, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Q1?", res.Records[0].Question)
}

func TestParseQuizQuestions_AllDroppedBecomesMalformed(t *testing.T) {
	// 解码成功但没有一条通过校验
	raw := `[{"question": "", "options": ["a"], "correct_answer": "", "explanation": ""}]`

	res := ParseQuizQuestions(raw, "topic", zap.NewNop())

	assert.Equal(t, OutcomeMalformed, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Error parsing quiz for topic", res.Records[0].Question)
}

func TestParseQuizQuestions_AnswerNotInOptionsKept(t *testing.T) {
	// 答案不在选项里只是警告，记录保留
	raw := `[{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": "z", "explanation": "e"}]`

	res := ParseQuizQuestions(raw, "topic", zap.NewNop())

	assert.Equal(t, OutcomeParsed, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "z", res.Records[0].CorrectAnswer)
}

func TestParseQuizQuestions_NilLogger(t *testing.T) {
	res := ParseQuizQuestions("no payload here", "topic", nil)
	assert.Equal(t, OutcomeNoPayload, res.Outcome)
}

// =============================================================================
// 🧪 闪卡解析测试
// =============================================================================

func TestParseFlashCards_Parsed(t *testing.T) {
	raw := `[{"front": "Chlorophyll", "back": "Green pigment that absorbs light"}]`

	res := ParseFlashCards(raw, "photosynthesis", zap.NewNop())

	assert.Equal(t, OutcomeParsed, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Chlorophyll", res.Records[0].Front)
}

func TestParseFlashCards_Malformed(t *testing.T) {
	raw := `[{"front": bad}]`

	res := ParseFlashCards(raw, "biology", zap.NewNop())

	assert.Equal(t, OutcomeMalformed, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Error parsing flash cards for biology", res.Records[0].Front)
	assert.Equal(t, "There was an error generating the flash cards", res.Records[0].Back)
}

func TestParseFlashCards_NoPayload(t *testing.T) {
	res := ParseFlashCards("no structured content", "history", zap.NewNop())

	assert.Equal(t, OutcomeNoPayload, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "What is history?", res.Records[0].Front)
	assert.Equal(t, "Based on the provided content", res.Records[0].Back)
}

func TestParseFlashCards_DropsEmptyCards(t *testing.T) {
	raw := `[{"front": "", "back": ""}, {"front": "Term", "back": "Definition"}]`

	res := ParseFlashCards(raw, "topic", zap.NewNop())

	assert.Equal(t, OutcomeParsed, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, types.FlashCard{Front: "Term", Back: "Definition"}, res.Records[0])
}

func TestParseFlashCards_AllDroppedBecomesMalformed(t *testing.T) {
	raw := `[{"front": "", "back": ""}]`

	res := ParseFlashCards(raw, "topic", zap.NewNop())

	assert.Equal(t, OutcomeMalformed, res.Outcome)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Error parsing flash cards for topic", res.Records[0].Front)
}

func TestParseFlashCards_OneSidedCardKept(t *testing.T) {
	// 只有一面非空的卡片仍然有效
	raw := `[{"front": "Mitochondria", "back": ""}]`

	res := ParseFlashCards(raw, "topic", zap.NewNop())

	assert.Equal(t, OutcomeParsed, res.Outcome)
	require.Len(t, res.Records, 1)
}
