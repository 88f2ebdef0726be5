// Package questions generates multiple-choice practice questions for a topic.
//
// The primary generator calls a hosted generative model; a cache and a static
// question bank sit in front of and behind it so the endpoint stays usable
// when the model is slow, rate limited or down.
package questions

import (
	"context"

	"github.com/pkg/errors"
)

// Question is a single multiple-choice question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Generator produces n questions for the given topic and difficulty.
type Generator interface {
	Generate(ctx context.Context, topic, difficulty string, n int) ([]Question, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, topic, difficulty string, n int) ([]Question, error)

func (f GeneratorFunc) Generate(ctx context.Context, topic, difficulty string, n int) ([]Question, error) {
	return f(ctx, topic, difficulty, n)
}

var errEmptyResult = errors.New("generator returned no questions")
