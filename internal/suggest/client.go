// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suggest is the editor's client for the citation API. A Client
// satisfies editor.Provider: each partial query becomes one GET against
// /api/citation/search on the configured server.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/cite-editor/internal/httputil"
	"github.com/pdiddy/cite-editor/pkg/types"
)

// DefaultBaseURL is the server address used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

const searchPath = "/api/citation/search"

// APIError is a non-200 answer from the citation API. Message carries the
// server's {"error"} text when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("citation API returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("citation API returned %d", e.StatusCode)
}

// Client queries the citation API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the server root, e.g. http://localhost:5000.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a Client for DefaultBaseURL unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig builds a Client from the editor section of the config.
func NewClientFromConfig(cfg types.EditorConfig) *Client {
	opts := []Option{WithUserAgent(cfg.UserAgent)}
	if cfg.ServerURL != "" {
		opts = append(opts, WithBaseURL(cfg.ServerURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	return NewClient(opts...)
}

// Search returns the candidates the server holds for query.
func (c *Client) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	u := c.baseURL + searchPath + "?" + url.Values{"q": {query}}.Encode()

	header := http.Header{}
	if c.userAgent != "" {
		header.Set("User-Agent", c.userAgent)
	}

	var candidates []types.Candidate
	err := httputil.GetJSON(ctx, c.httpClient, u, header, &candidates)
	var se *httputil.StatusError
	if errors.As(err, &se) {
		return nil, &APIError{StatusCode: se.StatusCode, Message: errorMessage(se.Body)}
	}
	if err != nil {
		return nil, fmt.Errorf("citation API request: %w", err)
	}
	if candidates == nil {
		candidates = []types.Candidate{}
	}
	return candidates, nil
}

// errorMessage extracts the "error" field from an error body, or returns
// the trimmed body when it is not JSON.
func errorMessage(body string) string {
	var eb httputil.ErrorBody
	if err := json.Unmarshal([]byte(body), &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return strings.TrimSpace(body)
}
