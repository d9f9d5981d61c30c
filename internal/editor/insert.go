// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"errors"
	"strings"

	"github.com/pdiddy/cite-editor/pkg/types"
)

// ErrInsertionPointLost is returned when neither the anchor nor any other
// position in the content holds "@" + query.
var ErrInsertionPointLost = errors.New("insertion point not found")

// MatchKind records how the replaced span was located.
type MatchKind uint8

const (
	// MatchAnchor: the span sat exactly at the captured anchor.
	MatchAnchor MatchKind = iota + 1
	// MatchLastOccurrence: the anchor was stale and the last occurrence of
	// the span was used instead.
	MatchLastOccurrence
)

func (m MatchKind) String() string {
	switch m {
	case MatchAnchor:
		return "anchor"
	case MatchLastOccurrence:
		return "last-occurrence"
	default:
		return "none"
	}
}

// InsertResult describes a successful insertion.
type InsertResult struct {
	// Start is the offset where the citation begins.
	Start int
	// End is the offset just past the trailing space.
	End   int
	Match MatchKind
}

// Insert replaces the span "@" + query with "<author> (<title>) ".
//
// The span is taken at anchor when the content there still reads "@" +
// query. Otherwise the last occurrence of the span is replaced; that
// fallback can hit an unrelated earlier span carrying the same text. When
// the span is absent the content is returned unchanged with
// ErrInsertionPointLost.
func Insert(content string, anchor Anchor, query string, c types.Candidate) (string, InsertResult, error) {
	span := string(TriggerChar) + query
	replacement := c.Citation() + " "

	start := -1
	match := MatchKind(0)
	if anchor.Offset >= 0 && strings.HasPrefix(content[min(anchor.Offset, len(content)):], span) {
		start = anchor.Offset
		match = MatchAnchor
	} else if i := strings.LastIndex(content, span); i >= 0 {
		start = i
		match = MatchLastOccurrence
	}
	if start < 0 {
		return content, InsertResult{}, ErrInsertionPointLost
	}

	out := content[:start] + replacement + content[start+len(span):]
	return out, InsertResult{Start: start, End: start + len(replacement), Match: match}, nil
}
