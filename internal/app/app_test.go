package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/extract"
	"github.com/LuckyTW/ppt-creator/internal/service/orchestrator"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		HTTPClient: config.HTTPClientConfig{TimeoutSeconds: 5},
		Limiter:    config.LimiterConfig{MaxConcurrent: 2},
		AI:         config.AIConfig{Provider: "gemini"},
		Storage:    config.StorageConfig{Type: "local", BasePath: t.TempDir(), RetentionMinutes: 30},
		Pipeline:   config.PipelineConfig{JobRetentionMinutes: 30},
	}
}

func TestNewWithoutAIKeyRunsFallbacks(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), nil, nil)
	require.NoError(t, err)
	assert.False(t, a.AIEnabled)

	text := strings.Repeat("Quarterly results were strong across all regions.\n\n", 6)
	content, err := extract.Extract([]byte(text), "results.txt")
	require.NoError(t, err)

	_, h := a.Orchestrator.Start(context.Background(), orchestrator.Input{
		FileName: "results.txt",
		Content:  content,
		Options:  model.GenerationOptions{Language: model.LangEnglish},
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := h.Wait(ctx)
	require.NoError(t, err)
	require.NoError(t, res.Err)

	obj, err := a.Store.Get(context.Background(), res.ResultID)
	require.NoError(t, err)
	assert.Equal(t, "results_presentation.pptx", obj.Name)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Type = "ftp"
	_, err := New(context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}
