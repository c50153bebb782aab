package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Options struct {
	Timeout    time.Duration
	MaxRetries int
}

// Client retries transport failures and 5xx responses with a linear backoff.
// AI SDKs receive it through StandardClient.
type Client struct {
	client     *http.Client
	maxRetries int
}

func New(opts Options) *Client {
	return &Client{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		maxRetries: opts.MaxRetries,
	}
}

func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
			if err := rewindBody(req); err != nil {
				return nil, err
			}
		}

		req = req.WithContext(ctx)
		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d, body: %s", resp.StatusCode, string(body))
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// StandardClient exposes the retry policy as a plain *http.Client so SDKs
// that accept one (genai, langchaingo) share it.
func (c *Client) StandardClient() *http.Client {
	base := c.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   c.client.Timeout,
		Transport: &retryTransport{client: c, base: base},
	}
}

type retryTransport struct {
	client *Client
	base   http.RoundTripper
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	inner := &Client{
		client:     &http.Client{Transport: t.base},
		maxRetries: t.client.maxRetries,
	}
	return inner.Do(req.Context(), req)
}

func rewindBody(req *http.Request) error {
	if req.Body == nil || req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return err
	}
	req.Body = body
	return nil
}
