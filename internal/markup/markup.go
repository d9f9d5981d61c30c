// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup reads the rich-text markup held by the editor surface:
// plain-text extraction for exports and word/character statistics.
package markup

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// PlainText returns the concatenated text content of markup, the way a
// browser reports textContent: text nodes joined with no separators and
// entities decoded. Comments are dropped.
func PlainText(markup string) (string, error) {
	if markup == "" {
		return "", nil
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing markup: %w", err)
	}

	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return sb.String(), nil
}

// Stats holds word and character counts of a document's text content.
type Stats struct {
	Words      int `json:"words" yaml:"words"`
	Characters int `json:"characters" yaml:"characters"`
}

// Count returns the statistics for markup. Words are whitespace-separated
// runs; characters are runes of the untrimmed text content.
func Count(markup string) (Stats, error) {
	text, err := PlainText(markup)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}, nil
}
