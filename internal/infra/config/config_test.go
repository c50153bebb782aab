package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("AI_API_KEY", "")
	t.Setenv("STORAGE_TYPE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Storage.Retention())
	assert.Equal(t, time.Second, cfg.Stream.PollInterval())
	assert.Equal(t, 120, cfg.Stream.MaxPolls)
	assert.Equal(t, 4096, cfg.AI.AnalysisMaxTokens)
	assert.Equal(t, 8192, cfg.AI.StructureMaxTokens)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := []byte(`
server:
  addr: ":9090"
ai:
  provider: openai
  model: gpt-4o-mini
storage:
  type: redis
  retention_minutes: 10
stream:
  max_polls: 5
`)
	require.NoError(t, os.WriteFile(path, yamlData, 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AI_API_KEY", "")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("SERVER_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, 10*time.Minute, cfg.Storage.Retention())
	assert.Equal(t, 5, cfg.Stream.MaxPolls)
	// untouched defaults survive a partial file
	assert.Equal(t, 0.7, cfg.AI.Temperature)
}
