package llm

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

// Gemini generates text with the Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, baseURL, model string, httpClient *http.Client) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeAIService, "gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIService, "failed to create gemini client")
	}
	return &Gemini{client: c, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(opts.Temperature)),
	}
	if opts.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAIService, "gemini request failed")
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New(errors.ErrCodeAIService, "empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New(errors.ErrCodeAIService, "empty response from gemini")
	}
	return sb.String(), nil
}
