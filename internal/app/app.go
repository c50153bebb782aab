// Package app wires configuration into a ready-to-run pipeline. Both the
// HTTP server and the CLI start from here.
package app

import (
	"context"
	"time"

	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/infra/httpclient"
	"github.com/LuckyTW/ppt-creator/internal/infra/limiter"
	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/service/analysis"
	"github.com/LuckyTW/ppt-creator/internal/service/llm"
	"github.com/LuckyTW/ppt-creator/internal/service/orchestrator"
	"github.com/LuckyTW/ppt-creator/internal/service/ppt"
	"github.com/LuckyTW/ppt-creator/internal/service/storage"
	"github.com/LuckyTW/ppt-creator/internal/service/structure"
)

type App struct {
	Config       *config.Config
	Logger       *logger.Logger
	Store        storage.Store
	Orchestrator *orchestrator.Orchestrator
	// AIEnabled is false when the stages run their fallbacks only.
	AIEnabled bool
}

func New(ctx context.Context, cfg *config.Config, log *logger.Logger, onProgress orchestrator.ProgressFunc) (*App, error) {
	log = logger.OrNop(log)

	httpClient := httpclient.New(httpclient.Options{
		Timeout:    time.Duration(cfg.HTTPClient.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.HTTPClient.MaxRetries,
	})

	gen, err := llm.New(ctx, cfg.AI, httpClient.StandardClient(), log)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	temperature := cfg.AI.Temperature
	orch := orchestrator.New(orchestrator.Deps{
		Analyzer: analysis.New(gen, llm.Options{
			MaxOutputTokens: cfg.AI.AnalysisMaxTokens,
			Temperature:     temperature,
		}, log),
		Designer: structure.New(gen, llm.Options{
			MaxOutputTokens: cfg.AI.StructureMaxTokens,
			Temperature:     temperature,
		}, log),
		Builder:    ppt.New(log),
		Store:      store,
		Limiter:    limiter.New(cfg.Limiter.MaxConcurrent, cfg.Limiter.RatePerSecond),
		OnProgress: onProgress,
	}, log)

	return &App{
		Config:       cfg,
		Logger:       log,
		Store:        store,
		Orchestrator: orch,
		AIEnabled:    gen != nil,
	}, nil
}

// RunJanitors prunes finished jobs and, for backends that need it, expired
// blobs. It returns immediately; the janitors stop with ctx.
func (a *App) RunJanitors(ctx context.Context) {
	go a.Orchestrator.RunJanitor(ctx, a.Config.Pipeline.JobRetention(), time.Minute)
	if sw, ok := a.Store.(storage.Sweeper); ok {
		go storage.RunJanitor(ctx, sw, a.Config.Storage.SweepInterval(), a.Logger)
	}
}
