// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import "unicode/utf8"

// TriggerChar opens citation-search mode.
const TriggerChar = '@'

// DefaultMaxQueryLength caps the characters collected after the trigger.
const DefaultMaxQueryLength = 64

// minFetchLength is the shortest query that is sent to the provider.
const minFetchLength = 2

// State is the query tracker state.
type State uint8

const (
	Idle State = iota
	Collecting
)

func (s State) String() string {
	if s == Collecting {
		return "collecting"
	}
	return "idle"
}

// Anchor is the insertion point captured at trigger time: the byte offset
// at which the trigger character was typed.
type Anchor struct {
	Offset int
}

// Action names what a keystroke did to the tracker.
type Action uint8

const (
	// ActionNone leaves tracker state untouched.
	ActionNone Action = iota
	// ActionOpen starts a new query and shows an empty candidate panel.
	ActionOpen
	// ActionQuery changed the accumulated query.
	ActionQuery
	// ActionCancel discarded the query and closed the panel.
	ActionCancel
)

// Transition is the outcome of one keystroke.
type Transition struct {
	Action Action
	// PassThrough reports whether the key still reaches the surface.
	PassThrough bool
	// Fetch requests candidates for the current query.
	Fetch bool
}

// Tracker is the Idle/Collecting state machine. It owns at most one query;
// a new trigger discards the previous one.
type Tracker struct {
	state  State
	query  string
	anchor Anchor
	maxLen int
}

// NewTracker returns an idle tracker. maxLen <= 0 selects DefaultMaxQueryLength.
func NewTracker(maxLen int) *Tracker {
	if maxLen <= 0 {
		maxLen = DefaultMaxQueryLength
	}
	return &Tracker{maxLen: maxLen}
}

func (t *Tracker) State() State   { return t.state }
func (t *Tracker) Query() string  { return t.query }
func (t *Tracker) Anchor() Anchor { return t.anchor }

// Reset returns the tracker to Idle and discards the query.
func (t *Tracker) Reset() {
	t.state = Idle
	t.query = ""
	t.anchor = Anchor{}
}

// Handle advances the state machine for key typed with the caret at caret.
//
// While collecting, a space cancels the search and is swallowed. Escape
// cancels. Characters outside [a-zA-Z0-9] pass through without touching
// the query. Backspace shortens the query, or cancels when the query is
// empty because the trigger itself is being deleted.
func (t *Tracker) Handle(key Key, caret int) Transition {
	if key.Kind == KeyRune && key.Rune == TriggerChar {
		t.state = Collecting
		t.query = ""
		t.anchor = Anchor{Offset: caret}
		return Transition{Action: ActionOpen, PassThrough: true}
	}

	if t.state == Idle {
		return Transition{Action: ActionNone, PassThrough: true}
	}

	switch key.Kind {
	case KeyEscape:
		t.Reset()
		return Transition{Action: ActionCancel}

	case KeyBackspace:
		if t.query == "" {
			t.Reset()
			return Transition{Action: ActionCancel, PassThrough: true}
		}
		_, size := utf8.DecodeLastRuneInString(t.query)
		t.query = t.query[:len(t.query)-size]
		return t.queryChanged()

	case KeyRune:
		if key.Rune == ' ' {
			t.Reset()
			return Transition{Action: ActionCancel}
		}
		if !isQueryRune(key.Rune) {
			return Transition{Action: ActionNone, PassThrough: true}
		}
		if utf8.RuneCountInString(t.query)+1 > t.maxLen {
			t.Reset()
			return Transition{Action: ActionCancel, PassThrough: true}
		}
		t.query += string(key.Rune)
		return t.queryChanged()
	}

	return Transition{Action: ActionNone, PassThrough: true}
}

func (t *Tracker) queryChanged() Transition {
	return Transition{
		Action:      ActionQuery,
		PassThrough: true,
		Fetch:       utf8.RuneCountInString(t.query) >= minFetchLength,
	}
}

func isQueryRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
