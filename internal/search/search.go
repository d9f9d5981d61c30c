// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search is the suggestion provider: it relays a partial query to one
// upstream bibliographic API and reshapes the top results into citation
// candidates.
//
// See docs/ARCHITECTURE § Suggestion Provider.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cite-editor/pkg/types"
)

// DefaultMaxResults is the top-N policy applied when none is configured.
const DefaultMaxResults = 10

// ErrEmptyQuery is returned for a missing or blank query. The upstream API
// is never called in that case.
var ErrEmptyQuery = errors.New("query is empty")

// ProviderError reports an upstream failure: unreachable API, non-200
// status, or a response that could not be decoded.
type ProviderError struct {
	Backend string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s search failed: %v", e.Backend, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Backend queries a single bibliographic API. Backends map each upstream
// record to a Candidate; Service applies defaults and truncation.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.Candidate, error)
}

// Service applies the top-N policy and candidate defaults on top of a Backend.
type Service struct {
	backend    Backend
	maxResults int
}

// NewService wraps backend with the configured top-N policy.
func NewService(backend Backend, cfg types.SearchConfig) *Service {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Service{backend: backend, maxResults: maxResults}
}

// NewBackend builds the backend named in cfg. An empty name selects Open Library.
func NewBackend(cfg types.SearchConfig, client *http.Client) (Backend, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	switch cfg.Backend {
	case "", types.BackendOpenLibrary:
		return &OpenLibraryBackend{Client: client, UserAgent: cfg.UserAgent}, nil
	case types.BackendOpenAlex:
		return &OpenAlexBackend{Client: client, UserAgent: cfg.UserAgent, Email: cfg.ContactEmail}, nil
	case types.BackendSemanticScholar:
		return &SemanticScholarBackend{Client: client, UserAgent: cfg.UserAgent, APIKey: cfg.SemanticScholarAPIKey}, nil
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Backend)
	}
}

// Backend returns the name of the upstream API.
func (s *Service) Backend() string { return s.backend.Name() }

// MaxResults returns the top-N limit.
func (s *Service) MaxResults() int { return s.maxResults }

// Search returns at most MaxResults candidates for query, in upstream order.
// Every candidate has a non-empty title and author.
func (s *Service) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	raw, err := s.backend.Search(ctx, query, s.maxResults)
	if err != nil {
		return nil, &ProviderError{Backend: s.backend.Name(), Err: err}
	}

	if len(raw) > s.maxResults {
		raw = raw[:s.maxResults]
	}
	out := make([]types.Candidate, len(raw))
	for i, c := range raw {
		out[i] = normalize(c)
	}
	return out, nil
}

// normalize trims fields and fills the Untitled/Unknown defaults.
func normalize(c types.Candidate) types.Candidate {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		c.Title = types.UntitledWork
	}
	c.Author = strings.TrimSpace(c.Author)
	if c.Author == "" {
		c.Author = types.UnknownAuthor
	}
	if c.Year < 0 {
		c.Year = 0
	}
	return c
}

// firstNonEmpty returns the first non-blank name, or "".
func firstNonEmpty(names []string) string {
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			return n
		}
	}
	return ""
}

// FormatTable writes candidates as a human-readable table to w.
func FormatTable(candidates []types.Candidate, w io.Writer) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-28s  %s\n", "Rank", "Title", "Author", "Year")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for i, c := range candidates {
		year := ""
		if c.Year > 0 {
			year = fmt.Sprintf("%d", c.Year)
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-28s  %s\n", i+1, truncate(c.Title, 50), truncate(c.Author, 28), year)
	}

	fmt.Fprintf(w, "\n%d results\n", len(candidates))
}

// FormatJSON writes candidates as indented JSON to w.
func FormatJSON(candidates []types.Candidate, w io.Writer) error {
	if candidates == nil {
		candidates = []types.Candidate{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}

// FormatYAML writes candidates as a YAML list to w.
func FormatYAML(candidates []types.Candidate, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(candidates)
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
