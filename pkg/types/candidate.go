// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for cite-editor.
// Covers the suggestion provider (Candidate), the editor document
// (Document), and the configuration for every component.
//
// See docs/ARCHITECTURE.md § Data Model.
package types

import "fmt"

const (
	// UnknownAuthor is used when the upstream record lists no author.
	UnknownAuthor = "Unknown"

	// UntitledWork is used when the upstream record has no title.
	UntitledWork = "Untitled"
)

// Candidate is one citation suggestion returned by the suggestion provider.
// Candidates are sourced fresh per query and never cached.
type Candidate struct {
	// Title is the work title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Author is the first listed author, or UnknownAuthor.
	Author string `json:"author" yaml:"author"`

	// Year is the publication year; zero means the source gave none.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`
}

// Citation returns the inline citation text "<author> (<title>)".
func (c Candidate) Citation() string {
	return fmt.Sprintf("%s (%s)", c.Author, c.Title)
}
