package llm

import (
	"context"
	"net/http"

	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/infra/limiter"
	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
)

// New builds the configured generator. It returns nil without error when
// no API key is set for a hosted provider; the stages then run their
// deterministic fallbacks.
func New(ctx context.Context, cfg config.AIConfig, httpClient *http.Client, log *logger.Logger) (Generator, error) {
	log = logger.OrNop(log)

	if cfg.APIKey == "" && cfg.Provider != ProviderOllama {
		log.Warn("no AI api key configured, running in fallback mode", "provider", cfg.Provider)
		return nil, nil
	}

	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case ProviderGemini, "":
		gen, err = NewGemini(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	default:
		gen, err = NewLangChain(cfg.Provider, cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	}
	if err != nil {
		return nil, err
	}

	log.Info("AI generator ready", "provider", cfg.Provider, "model", cfg.Model)

	if cfg.MaxConcurrent > 0 {
		gen = NewLimited(gen, limiter.New(cfg.MaxConcurrent, cfg.RatePerSecond))
	}
	return gen, nil
}
