// Package client is a Go SDK for the marketplace API. GET responses are
// cached by path and query; every mutation drops the cache entries it can
// affect, so the next read after a successful write always hits the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int               `json:"-"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s %v", e.StatusCode, e.Message, e.Errors)
}

// Client talks to one API base URL on behalf of one bearer token.
type Client struct {
	baseURL string
	doer    Doer

	mu    sync.RWMutex
	token string
	cache map[string][]byte
}

type Option func(*Client)

// WithDoer replaces the default *http.Client.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{Timeout: 30 * time.Second},
		cache:   make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken switches the identity and clears the cache.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.cache = make(map[string][]byte)
	c.mu.Unlock()
}

// Invalidate drops every cached response whose key starts with one of
// prefixes. An empty prefix clears the whole cache.
func (c *Client) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.cache, key)
				break
			}
		}
	}
}

func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// get serves from the cache when possible.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	key := cacheKey(path, query)

	c.mu.RLock()
	body, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok {
		var err error
		body, err = c.do(ctx, http.MethodGet, key, nil)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.cache[key] = body
		c.mu.Unlock()
	}
	return decode(body, out)
}

// send performs a mutation and, when it succeeds, invalidates the given
// cache prefixes.
func (c *Client) send(ctx context.Context, method, path string, in, out interface{}, invalidate ...string) error {
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	c.Invalidate(invalidate...)
	return decode(body, out)
}

func (c *Client) do(ctx context.Context, method, path string, in interface{}) ([]byte, error) {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return body, nil
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
