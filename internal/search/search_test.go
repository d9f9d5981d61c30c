// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/cite-editor/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	name    string
	results []types.Candidate
	err     error
	calls   int
	queries []string
	limits  []int
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Search(_ context.Context, query string, limit int) ([]types.Candidate, error) {
	m.calls++
	m.queries = append(m.queries, query)
	m.limits = append(m.limits, limit)
	return m.results, m.err
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults: 10,
	}
}

func manyCandidates(n int) []types.Candidate {
	out := make([]types.Candidate, n)
	for i := range out {
		out[i] = types.Candidate{Title: fmt.Sprintf("Book %d", i), Author: fmt.Sprintf("Author %d", i)}
	}
	return out
}

// --- Empty query ---

func TestSearchEmptyQueryNeverCallsBackend(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", q), func(t *testing.T) {
			mb := &mockBackend{name: "mock"}
			s := NewService(mb, testCfg())

			_, err := s.Search(context.Background(), q)
			if !errors.Is(err, ErrEmptyQuery) {
				t.Fatalf("err = %v, want ErrEmptyQuery", err)
			}
			if mb.calls != 0 {
				t.Errorf("backend called %d times, want 0", mb.calls)
			}
		})
	}
}

func TestSearchTrimsQuery(t *testing.T) {
	mb := &mockBackend{name: "mock"}
	s := NewService(mb, testCfg())

	if _, err := s.Search(context.Background(), "  einstein "); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if mb.queries[0] != "einstein" {
		t.Errorf("backend query = %q, want %q", mb.queries[0], "einstein")
	}
}

// --- Top-N policy ---

func TestSearchTruncatesToMaxResults(t *testing.T) {
	tests := []struct {
		name       string
		maxResults int
		upstream   int
		want       int
	}{
		{"default policy is ten", 0, 25, 10},
		{"configured five", 5, 25, 5},
		{"fewer than limit", 10, 3, 3},
		{"none", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := &mockBackend{name: "mock", results: manyCandidates(tt.upstream)}
			cfg := testCfg()
			cfg.MaxResults = tt.maxResults
			s := NewService(mb, cfg)

			got, err := s.Search(context.Background(), "books")
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if mb.limits[0] != s.MaxResults() {
				t.Errorf("backend limit = %d, want %d", mb.limits[0], s.MaxResults())
			}
		})
	}
}

func TestSearchKeepsUpstreamOrder(t *testing.T) {
	mb := &mockBackend{name: "mock", results: manyCandidates(4)}
	s := NewService(mb, testCfg())

	got, err := s.Search(context.Background(), "books")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i, c := range got {
		if c.Title != fmt.Sprintf("Book %d", i) {
			t.Errorf("got[%d].Title = %q", i, c.Title)
		}
	}
}

// --- Defaults ---

func TestSearchFillsDefaults(t *testing.T) {
	mb := &mockBackend{name: "mock", results: []types.Candidate{
		{Title: "Relativity", Author: "Albert Einstein", Year: 1920},
		{Title: "", Author: ""},
		{Title: "  Spaced  ", Author: "  ", Year: -3},
	}}
	s := NewService(mb, testCfg())

	got, err := s.Search(context.Background(), "einstein")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := []types.Candidate{
		{Title: "Relativity", Author: "Albert Einstein", Year: 1920},
		{Title: "Untitled", Author: "Unknown"},
		{Title: "Spaced", Author: "Unknown"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// --- Provider errors ---

func TestSearchWrapsBackendError(t *testing.T) {
	cause := errors.New("connection refused")
	mb := &mockBackend{name: "mock", err: cause}
	s := NewService(mb, testCfg())

	_, err := s.Search(context.Background(), "einstein")
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
	if pe.Backend != "mock" {
		t.Errorf("Backend = %q, want mock", pe.Backend)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false")
	}
}

// --- Backend selection ---

func TestNewBackend(t *testing.T) {
	tests := []struct {
		backend types.BackendName
		want    string
		wantErr bool
	}{
		{"", "openlibrary", false},
		{types.BackendOpenLibrary, "openlibrary", false},
		{types.BackendOpenAlex, "openalex", false},
		{types.BackendSemanticScholar, "semantic_scholar", false},
		{"crossref", "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cfg := testCfg()
			cfg.Backend = tt.backend
			b, err := NewBackend(cfg, &http.Client{})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend: %v", err)
			}
			if b.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", b.Name(), tt.want)
			}
		})
	}
}

// --- Output formats ---

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable([]types.Candidate{
		{Title: "Relativity", Author: "Albert Einstein", Year: 1920},
		{Title: "Untitled", Author: "Unknown"},
	}, &buf)

	out := buf.String()
	for _, want := range []string{"Rank", "Relativity", "Albert Einstein", "1920", "2 results"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("got %q", buf.String())
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Relativity", 50, "Relativity"},
		{"Erwin Schrödinger", 17, "Erwin Schrödinger"},
		{"Über die Elektrodynamik bewegter Körper", 10, "Über di..."},
		{"相对论的意义与发展历史", 8, "相对论的意..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.max)
		}
	}
}

func TestFormatTableNonASCII(t *testing.T) {
	var buf bytes.Buffer
	FormatTable([]types.Candidate{{
		Title:  strings.Repeat("ü", 60),
		Author: strings.Repeat("名", 40),
	}}, &buf)

	out := buf.String()
	if !utf8.ValidString(out) {
		t.Fatalf("table is not valid UTF-8:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("ü", 47)+"...") {
		t.Errorf("title not cut at 50 runes:\n%s", out)
	}
}

func TestFormatJSONOmitsZeroYear(t *testing.T) {
	var buf bytes.Buffer
	err := FormatJSON([]types.Candidate{
		{Title: "Relativity", Author: "Albert Einstein", Year: 1920},
		{Title: "Notes", Author: "Unknown"},
	}, &buf)
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw[0]["year"] != float64(1920) {
		t.Errorf("year = %v, want 1920", raw[0]["year"])
	}
	if _, ok := raw[1]["year"]; ok {
		t.Errorf("zero year should be omitted: %v", raw[1])
	}
}

func TestFormatJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(nil, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("got %q, want []", buf.String())
	}
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatYAML([]types.Candidate{{Title: "Relativity", Author: "Albert Einstein", Year: 1920}}, &buf); err != nil {
		t.Fatalf("FormatYAML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"title: Relativity", "author: Albert Einstein", "year: 1920"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
}
