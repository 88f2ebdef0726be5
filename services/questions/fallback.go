package questions

import (
	"context"
	"fmt"

	"github.com/jnanasetu/platform/core"
)

type fallbackGenerator struct {
	primary  Generator
	fallback Generator
	logger   core.Logger
}

var _ Generator = (*fallbackGenerator)(nil)

// WithFallback returns a Generator that tries primary first and, on any
// failure, serves from fallback instead of surfacing the error.
func WithFallback(primary, fallback Generator, logger core.Logger) *fallbackGenerator {
	return &fallbackGenerator{primary: primary, fallback: fallback, logger: logger}
}

func (g *fallbackGenerator) Generate(ctx context.Context, topic, difficulty string, n int) ([]Question, error) {
	qs, err := g.primary.Generate(ctx, topic, difficulty, n)
	if err == nil {
		return qs, nil
	}
	g.logger.Warn(fmt.Sprintf("question generation failed, using fallback: %v", err))
	return g.fallback.Generate(ctx, topic, difficulty, n)
}
