package llm

import (
	"context"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// LangChain generates text with any langchaingo model.
type LangChain struct {
	model    llms.Model
	provider string
}

func NewLangChain(provider, apiKey, baseURL, model string, httpClient *http.Client) (*LangChain, error) {
	var (
		m   llms.Model
		err error
	)
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, errors.New(errors.ErrCodeAIService, "openai: empty api key")
		}
		opts := []openai.Option{
			openai.WithToken(apiKey),
			openai.WithModel(model),
			openai.WithHTTPClient(httpClient),
		}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		m, err = openai.New(opts...)

	case ProviderAnthropic:
		if apiKey == "" {
			return nil, errors.New(errors.ErrCodeAIService, "anthropic: empty api key")
		}
		opts := []anthropic.Option{
			anthropic.WithToken(apiKey),
			anthropic.WithModel(model),
			anthropic.WithHTTPClient(httpClient),
		}
		if baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(baseURL))
		}
		m, err = anthropic.New(opts...)

	case ProviderOllama:
		opts := []ollama.Option{
			ollama.WithModel(model),
			ollama.WithHTTPClient(httpClient),
		}
		if baseURL != "" {
			opts = append(opts, ollama.WithServerURL(baseURL))
		}
		m, err = ollama.New(opts...)

	default:
		return nil, errors.New(errors.ErrCodeAIService, "unsupported AI provider: "+provider)
	}

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIService, "failed to create "+provider+" model")
	}
	return &LangChain{model: m, provider: provider}, nil
}

func (l *LangChain) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.MaxOutputTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxOutputTokens))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, l.model, prompt, callOpts...)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAIService, l.provider+" request failed")
	}
	if text == "" {
		return "", errors.New(errors.ErrCodeAIService, "empty response from "+l.provider)
	}
	return text, nil
}
