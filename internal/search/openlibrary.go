// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/cite-editor/internal/httputil"
	"github.com/pdiddy/cite-editor/pkg/types"
)

// openLibrarySearchBase is the Open Library search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openLibrarySearchBase = "https://openlibrary.org/search.json"

const openLibraryFields = "title,author_name,first_publish_year"

// OpenLibraryBackend queries the Open Library book search API.
type OpenLibraryBackend struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *OpenLibraryBackend) Name() string { return string(types.BackendOpenLibrary) }

// Search runs a free-text Open Library search and maps each doc to a candidate.
func (b *OpenLibraryBackend) Search(ctx context.Context, query string, limit int) ([]types.Candidate, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Open Library query")
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	params := url.Values{
		"q":      {query},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {openLibraryFields},
	}

	header := http.Header{}
	if b.UserAgent != "" {
		header.Set("User-Agent", b.UserAgent)
	}

	var olr openLibraryResponse
	if err := httputil.GetJSON(ctx, b.Client, openLibrarySearchBase+"?"+params.Encode(), header, &olr); err != nil {
		return nil, fmt.Errorf("Open Library API request: %w", err)
	}

	results := make([]types.Candidate, 0, len(olr.Docs))
	for _, doc := range olr.Docs {
		results = append(results, types.Candidate{
			Title:  doc.Title,
			Author: firstNonEmpty(doc.AuthorName),
			Year:   doc.FirstPublishYear,
		})
	}
	return results, nil
}

// Open Library API JSON structures.
type openLibraryResponse struct {
	NumFound int              `json:"numFound"`
	Start    int              `json:"start"`
	Docs     []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
}
