package study

import "fmt"

// 提示词模板. 上下文来自检索器，可能为空字符串；
// 模板必须容忍空上下文而不是报错.

const explainTemplate = "Use the following context from a textbook to answer the question simply and clearly:\n\n" +
	"%s\n\n" +
	"Question: %s\n" +
	"Provide a clear, simple explanation:"

const quizTemplate = "Based on the following educational content, generate %d multiple choice questions:\n\n" +
	"%s\n\n" +
	"Generate %d questions in this exact JSON format:\n" +
	`[{"question": "Question text?", "options": ["A", "B", "C", "D"], "correct_answer": "A", "explanation": "Why this is correct"}]` + "\n" +
	"Make sure the questions are relevant to the topic and vary in difficulty."

const flashCardTemplate = "Based on the following educational content, generate %d flash cards:\n\n" +
	"%s\n\n" +
	"Generate %d flash cards in this exact JSON format:\n" +
	`[{"front": "Question or term", "back": "Answer or definition"}]` + "\n" +
	"Make sure the cards cover key concepts from the topic."

func renderExplainPrompt(context, question string) string {
	return fmt.Sprintf(explainTemplate, context, question)
}

func renderQuizPrompt(context string, numQuestions int) string {
	return fmt.Sprintf(quizTemplate, numQuestions, context, numQuestions)
}

func renderFlashCardPrompt(context string, numCards int) string {
	return fmt.Sprintf(flashCardTemplate, numCards, context, numCards)
}
