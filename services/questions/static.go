package questions

import "context"

// staticGenerator serves questions from a small built-in bank. It never fails
// and exists as the last resort behind the model-backed generator.
type staticGenerator struct{}

var _ Generator = (*staticGenerator)(nil)

func NewStaticGenerator() *staticGenerator {
	return &staticGenerator{}
}

var questionBank = []Question{
	{
		Question:      "Which HTTP status code indicates that a resource was not found?",
		Options:       []string{"200", "301", "404", "500"},
		CorrectAnswer: "404",
	},
	{
		Question:      "What does SQL stand for?",
		Options:       []string{"Structured Query Language", "Simple Query Logic", "Sequential Question List", "Standard Quality Level"},
		CorrectAnswer: "Structured Query Language",
	},
	{
		Question:      "Which data structure operates on a first-in, first-out basis?",
		Options:       []string{"Stack", "Queue", "Tree", "Graph"},
		CorrectAnswer: "Queue",
	},
	{
		Question:      "What is the time complexity of binary search on a sorted array?",
		Options:       []string{"O(n)", "O(n log n)", "O(log n)", "O(1)"},
		CorrectAnswer: "O(log n)",
	},
	{
		Question:      "Which of these is NOT a valid JSON value type?",
		Options:       []string{"string", "number", "function", "boolean"},
		CorrectAnswer: "function",
	},
}

func (g *staticGenerator) Generate(_ context.Context, _, _ string, n int) ([]Question, error) {
	if n <= 0 || n > len(questionBank) {
		n = len(questionBank)
	}
	qs := make([]Question, n)
	copy(qs, questionBank[:n])
	return qs, nil
}
