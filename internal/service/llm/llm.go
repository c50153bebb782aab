// Package llm is the text generation boundary of the pipeline. Stages only
// see Generator; providers live behind it.
package llm

import "context"

// Options tune a single generation call.
type Options struct {
	MaxOutputTokens int
	Temperature     float64
}

type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}
