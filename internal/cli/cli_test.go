package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func offlineEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("AI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
}

func TestThemesCommand(t *testing.T) {
	out, err := run(t, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "modern-blue")
	assert.Contains(t, out, "professional-green")
}

func TestConvertWritesDeck(t *testing.T) {
	offlineEnv(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	body := "# Launch Plan\n\n## Goals\n- Ship the beta to fifty customers\n- Collect feedback weekly\n\n## Risks\nHiring may slip by a month.\n"
	require.NoError(t, os.WriteFile(src, []byte(body), 0o644))
	target := filepath.Join(dir, "deck.pptx")

	out, err := run(t, "convert", src, "-o", target, "--lang", "en", "--theme", "minimal-light")
	require.NoError(t, err, out)
	assert.Contains(t, out, "[100%] completed")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PK"))
}

func TestConvertRejectsBadFlags(t *testing.T) {
	offlineEnv(t)
	src := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(src, []byte("one two three four five six seven eight nine ten eleven"), 0o644))

	_, err := run(t, "convert", src, "--theme", "neon", "--lang", "ko")
	assert.ErrorContains(t, err, "unknown theme")

	_, err = run(t, "convert", src, "--theme", "modern-blue", "--lang", "de")
	assert.ErrorContains(t, err, "unsupported language")
}
