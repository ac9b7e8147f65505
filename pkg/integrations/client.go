package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/ekistations/pkg/cache"
	"github.com/matzehuels/ekistations/pkg/observability"
)

// Client provides shared HTTP functionality for upstream API clients.
// It handles optional response caching, default headers and hook emission.
//
// All methods are safe for concurrent use.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// NewClient creates a Client.
//
// Responses are cached in backend under namespace for ttl; a ttl of 0 or a
// nil backend disables caching. Headers are applied to every request and
// may be nil.
func NewClient(backend cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(0),
		cache:     backend,
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
	}
}

// SetTimeout replaces the per-request timeout. Zero disables it.
func (c *Client) SetTimeout(d time.Duration) {
	c.http = NewHTTPClient(d)
}

// GetText performs an HTTP GET and returns the full response body.
//
// Transport failures return an error wrapping [ErrNetwork]. Any HTTP status
// is returned as a body without error; only 2xx bodies are cached.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	key := cache.HTTPKey(c.namespace, url)
	if c.ttl > 0 {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, key)
			return string(data), nil
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	body, status, err := c.do(ctx, url)
	if err != nil {
		return "", err
	}

	if c.ttl > 0 && IsSuccess(status) {
		if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, key, len(body))
		}
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, 0, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return body, resp.StatusCode, nil
}
