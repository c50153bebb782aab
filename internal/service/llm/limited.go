package llm

import (
	"context"

	"github.com/LuckyTW/ppt-creator/internal/infra/limiter"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

// Limited bounds concurrent and per-second calls to the wrapped generator.
type Limited struct {
	next    Generator
	limiter *limiter.Limiter
}

func NewLimited(next Generator, l *limiter.Limiter) *Limited {
	return &Limited{next: next, limiter: l}
}

func (g *Limited) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	release, err := g.limiter.Acquire(ctx)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeRateLimited, "AI call was not admitted")
	}
	defer release()
	return g.next.Generate(ctx, prompt, opts)
}
