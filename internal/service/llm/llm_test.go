package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/infra/limiter"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

func TestDecodeJSONPrefersFencedBlock(t *testing.T) {
	reply := "Here you go:\n```json\n{\"title\": \"fenced\"}\n```\nand also {\"title\": \"loose\"}"

	var out struct{ Title string }
	require.NoError(t, DecodeJSON(reply, &out))
	assert.Equal(t, "fenced", out.Title)
}

func TestDecodeJSONFindsBalancedObject(t *testing.T) {
	reply := `Sure! {"title": "a {brace} in a string", "n": {"x": 1}} trailing words`

	var out struct {
		Title string
		N     map[string]int
	}
	require.NoError(t, DecodeJSON(reply, &out))
	assert.Equal(t, "a {brace} in a string", out.Title)
	assert.Equal(t, 1, out.N["x"])
}

func TestDecodeJSONFailsOnProse(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("I cannot help with that.", &out)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAIService, errors.Code(err))
}

func TestNewWithoutKeyReturnsNil(t *testing.T) {
	gen, err := New(context.Background(), config.AIConfig{Provider: ProviderGemini}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, gen)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.AIConfig{Provider: "acme", APIKey: "k"}, nil, nil)
	require.Error(t, err)
}

func TestLimitedCapsConcurrency(t *testing.T) {
	var inFlight, peak int32
	slow := GeneratorFunc(func(ctx context.Context, prompt string, opts Options) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return "ok", nil
	})

	gen := NewLimited(slow, limiter.New(1, 0))
	done := make(chan struct{})
	for i := 0; i < 3; i++ {
		go func() {
			_, _ = gen.Generate(context.Background(), "p", Options{})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 3; i++ {
		<-done
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestLimitedHonorsCancellation(t *testing.T) {
	l := limiter.New(1, 0)
	release, err := l.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewLimited(GeneratorFunc(func(context.Context, string, Options) (string, error) {
		return "unreachable", nil
	}), l)
	_, err = gen.Generate(ctx, "p", Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRateLimited, errors.Code(err))
}

func TestGeminiGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"ok\":"},{"text":"true}"}]}}]}`)
	}))
	defer srv.Close()

	gen, err := NewGemini(context.Background(), "test-key", srv.URL, "gemini-2.5-flash", srv.Client())
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "hello", Options{MaxOutputTokens: 100, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	assert.Contains(t, gotBody, "contents")
}
