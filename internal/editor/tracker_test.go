// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerTriggerOpens(t *testing.T) {
	tr := NewTracker(0)

	got := tr.Handle(RuneKey('@'), 7)
	assert.Equal(t, Transition{Action: ActionOpen, PassThrough: true}, got)
	assert.Equal(t, Collecting, tr.State())
	assert.Equal(t, Anchor{Offset: 7}, tr.Anchor())
	assert.Equal(t, "", tr.Query())
}

func TestTrackerIdleIgnoresKeys(t *testing.T) {
	tr := NewTracker(0)
	for _, k := range []Key{RuneKey('a'), RuneKey(' '), Escape, Backspace, Enter} {
		got := tr.Handle(k, 0)
		assert.Equal(t, Transition{Action: ActionNone, PassThrough: true}, got, "key %s", k)
		assert.Equal(t, Idle, tr.State())
	}
}

func TestTrackerCollectsAndFetchesAfterTwoChars(t *testing.T) {
	tr := NewTracker(0)
	tr.Handle(RuneKey('@'), 0)

	first := tr.Handle(RuneKey('e'), 1)
	assert.Equal(t, Transition{Action: ActionQuery, PassThrough: true, Fetch: false}, first)

	second := tr.Handle(RuneKey('i'), 2)
	assert.Equal(t, Transition{Action: ActionQuery, PassThrough: true, Fetch: true}, second)
	assert.Equal(t, "ei", tr.Query())
}

func TestTrackerSpaceCancelsAndIsSwallowed(t *testing.T) {
	tr := NewTracker(0)
	tr.Handle(RuneKey('@'), 0)
	tr.Handle(RuneKey('a'), 1)

	got := tr.Handle(RuneKey(' '), 2)
	assert.Equal(t, Transition{Action: ActionCancel, PassThrough: false}, got)
	assert.Equal(t, Idle, tr.State())
	assert.Equal(t, "", tr.Query())
}

func TestTrackerEscapeCancels(t *testing.T) {
	tr := NewTracker(0)
	tr.Handle(RuneKey('@'), 0)
	tr.Handle(RuneKey('a'), 1)
	tr.Handle(RuneKey('b'), 2)

	got := tr.Handle(Escape, 3)
	assert.Equal(t, ActionCancel, got.Action)
	assert.False(t, got.Fetch)
	assert.Equal(t, Idle, tr.State())
}

func TestTrackerOtherCharsPassThrough(t *testing.T) {
	tr := NewTracker(0)
	tr.Handle(RuneKey('@'), 0)
	tr.Handle(RuneKey('a'), 1)

	for _, r := range []rune{'-', '.', 'é', '(', '\''} {
		got := tr.Handle(RuneKey(r), 2)
		assert.Equal(t, Transition{Action: ActionNone, PassThrough: true}, got, "rune %q", r)
		assert.Equal(t, Collecting, tr.State())
		assert.Equal(t, "a", tr.Query())
	}
}

func TestTrackerNewTriggerDiscardsQuery(t *testing.T) {
	tr := NewTracker(0)
	tr.Handle(RuneKey('@'), 0)
	tr.Handle(RuneKey('a'), 1)
	tr.Handle(RuneKey('b'), 2)

	got := tr.Handle(RuneKey('@'), 3)
	assert.Equal(t, ActionOpen, got.Action)
	assert.Equal(t, "", tr.Query())
	assert.Equal(t, Anchor{Offset: 3}, tr.Anchor())
}

func TestTrackerBackspace(t *testing.T) {
	tr := NewTracker(0)
	tr.Handle(RuneKey('@'), 0)
	tr.Handle(RuneKey('a'), 1)
	tr.Handle(RuneKey('b'), 2)
	tr.Handle(RuneKey('c'), 3)

	got := tr.Handle(Backspace, 4)
	assert.Equal(t, Transition{Action: ActionQuery, PassThrough: true, Fetch: true}, got)
	assert.Equal(t, "ab", tr.Query())

	got = tr.Handle(Backspace, 3)
	assert.Equal(t, Transition{Action: ActionQuery, PassThrough: true, Fetch: false}, got)

	tr.Handle(Backspace, 2)
	assert.Equal(t, "", tr.Query())
	assert.Equal(t, Collecting, tr.State())

	got = tr.Handle(Backspace, 1)
	assert.Equal(t, Transition{Action: ActionCancel, PassThrough: true}, got)
	assert.Equal(t, Idle, tr.State())
}

func TestTrackerMaxQueryLength(t *testing.T) {
	tr := NewTracker(3)
	tr.Handle(RuneKey('@'), 0)
	for i, r := range "abc" {
		got := tr.Handle(RuneKey(r), i+1)
		assert.Equal(t, ActionQuery, got.Action)
	}

	got := tr.Handle(RuneKey('d'), 4)
	assert.Equal(t, Transition{Action: ActionCancel, PassThrough: true}, got)
	assert.Equal(t, Idle, tr.State())
}

func TestTrackerDefaultMaxQueryLength(t *testing.T) {
	tr := NewTracker(0)
	tr.Handle(RuneKey('@'), 0)
	for range DefaultMaxQueryLength {
		tr.Handle(RuneKey('x'), 0)
	}
	assert.Equal(t, strings.Repeat("x", DefaultMaxQueryLength), tr.Query())

	tr.Handle(RuneKey('x'), 0)
	assert.Equal(t, Idle, tr.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "collecting", Collecting.String())
}
