// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/sourcegraph/conc"

	"github.com/pdiddy/cite-editor/internal/markup"
	"github.com/pdiddy/cite-editor/pkg/types"
)

// ErrNoSelection is returned by Select when the panel is closed or the
// index is out of range.
var ErrNoSelection = errors.New("no candidate at that position")

// Provider returns ordered candidates for a partial query.
type Provider interface {
	Search(ctx context.Context, query string) ([]types.Candidate, error)
}

// Saver persists the document after every change.
type Saver interface {
	Save(ctx context.Context, doc types.Document) error
}

// Panel is a snapshot of the candidate panel.
type Panel struct {
	Visible    bool
	Query      string
	Anchor     Anchor
	Candidates []types.Candidate
}

// Session owns one document, its surface, the query tracker and the
// candidate panel. All state transitions are serialized by the session
// mutex; suggestion fetches run on their own goroutines and re-enter
// through a sequence check.
type Session struct {
	mu         sync.Mutex
	surface    Surface
	title      string
	tracker    *Tracker
	provider   Provider
	saver      Saver
	logger     *slog.Logger
	visible    bool
	candidates []types.Candidate

	// seq is the number of the latest issued fetch. A response carrying
	// any other number is stale and dropped.
	seq uint64

	fetches conc.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithSurface replaces the default TextBuffer.
func WithSurface(s Surface) Option {
	return func(sess *Session) { sess.surface = s }
}

// WithSaver persists the document on every change.
func WithSaver(s Saver) Option {
	return func(sess *Session) { sess.saver = s }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(sess *Session) { sess.logger = l }
}

// WithMaxQueryLength caps the query collected after the trigger.
func WithMaxQueryLength(n int) Option {
	return func(sess *Session) { sess.tracker = NewTracker(n) }
}

// NewSession starts a session on doc. Unless WithSurface is given, the
// content is loaded into a TextBuffer with the caret at the end.
func NewSession(doc types.Document, provider Provider, opts ...Option) *Session {
	s := &Session{
		title:    doc.Title,
		tracker:  NewTracker(DefaultMaxQueryLength),
		provider: provider,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.surface == nil {
		s.surface = NewTextBuffer(doc.Content)
	} else {
		s.surface.SetContent(doc.Content)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// HandleKey routes one keystroke through the tracker and, unless the
// tracker consumed it, on to the surface.
func (s *Session) HandleKey(ctx context.Context, key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.surface.Content()
	tr := s.tracker.Handle(key, s.surface.Caret())
	if tr.PassThrough {
		s.apply(key)
	}

	switch tr.Action {
	case ActionOpen:
		s.visible = true
		s.candidates = nil
		s.seq++
	case ActionCancel:
		s.closePanel()
	case ActionQuery:
		s.seq++
		if tr.Fetch {
			s.fetch(ctx, s.seq, s.tracker.Query())
		} else {
			s.candidates = nil
		}
	}

	if s.surface.Content() != before {
		s.save(ctx)
	}
}

// Type sends every rune of text through HandleKey.
func (s *Session) Type(ctx context.Context, text string) {
	for _, k := range KeysFromString(text) {
		s.HandleKey(ctx, k)
	}
}

// apply forwards a key to the surface.
func (s *Session) apply(key Key) {
	switch key.Kind {
	case KeyRune:
		s.surface.Insert(string(key.Rune))
	case KeyEnter:
		s.surface.Insert("\n")
	case KeyBackspace:
		s.surface.DeleteBack()
	case KeyLeft:
		content, caret := s.surface.Content(), s.surface.Caret()
		if caret > 0 {
			_, size := utf8.DecodeLastRuneInString(content[:caret])
			s.surface.SetCaret(caret - size)
		}
	case KeyRight:
		content, caret := s.surface.Content(), s.surface.Caret()
		if caret < len(content) {
			_, size := utf8.DecodeRuneInString(content[caret:])
			s.surface.SetCaret(caret + size)
		}
	}
}

// fetch issues an asynchronous lookup tagged with seq. Caller holds s.mu.
func (s *Session) fetch(ctx context.Context, seq uint64, query string) {
	s.fetches.Go(func() {
		candidates, err := s.provider.Search(ctx, query)
		s.deliver(seq, query, candidates, err)
	})
}

func (s *Session) deliver(seq uint64, query string, candidates []types.Candidate, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || !s.visible {
		s.logger.Debug("discarding stale suggestions", "query", query, "seq", seq, "latest", s.seq)
		return
	}
	if err != nil {
		s.logger.Warn("fetching suggestions failed", "query", query, "error", err)
		s.candidates = []types.Candidate{}
		return
	}
	s.candidates = candidates
}

// Select inserts the candidate at index i of the panel in place of the
// in-progress query. The panel closes and the query resets whatever the
// outcome. ErrInsertionPointLost means the document was left unchanged.
func (s *Session) Select(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.visible || i < 0 || i >= len(s.candidates) {
		return ErrNoSelection
	}
	c := s.candidates[i]
	anchor, query := s.tracker.Anchor(), s.tracker.Query()
	s.closePanel()

	content, res, err := Insert(s.surface.Content(), anchor, query, c)
	if err != nil {
		s.logger.Warn("citation not inserted", "query", query, "anchor", anchor.Offset, "error", err)
		return err
	}
	if res.Match != MatchAnchor {
		s.logger.Debug("insertion anchor moved, used last occurrence", "query", query, "anchor", anchor.Offset, "start", res.Start)
	}
	s.surface.SetContent(content)
	s.surface.SetCaret(res.End)
	s.save(ctx)
	return nil
}

// Dismiss closes the panel as Escape would, without touching the surface.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closePanel()
}

// closePanel resets the tracker and invalidates in-flight fetches. Caller holds s.mu.
func (s *Session) closePanel() {
	s.tracker.Reset()
	s.visible = false
	s.candidates = nil
	s.seq++
}

// SetTitle changes the document title and persists the document.
func (s *Session) SetTitle(ctx context.Context, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if title == s.title {
		return
	}
	s.title = title
	s.save(ctx)
}

// SetContent replaces the whole document content, as a paste or an
// external edit of the surface would.
func (s *Session) SetContent(ctx context.Context, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if content == s.surface.Content() {
		return
	}
	s.surface.SetContent(content)
	s.surface.SetCaret(len(content))
	s.save(ctx)
}

// Clear empties the document, restores the default title and closes the panel.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closePanel()
	s.surface.SetContent("")
	s.surface.SetCaret(0)
	s.title = types.DefaultDocumentTitle
	s.save(ctx)
}

// save persists the document. Caller holds s.mu.
func (s *Session) save(ctx context.Context) {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(ctx, s.document()); err != nil {
		s.logger.Error("saving document failed", "error", err)
	}
}

func (s *Session) document() types.Document {
	return types.Document{Content: s.surface.Content(), Title: s.title}
}

// Document returns the current content and title.
func (s *Session) Document() types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document()
}

// Caret returns the surface caret offset.
func (s *Session) Caret() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Caret()
}

// State returns the tracker state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.State()
}

// Panel returns a copy of the candidate panel.
func (s *Session) Panel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Panel{Visible: s.visible}
	if s.visible {
		p.Query = s.tracker.Query()
		p.Anchor = s.tracker.Anchor()
		p.Candidates = slices.Clone(s.candidates)
	}
	return p
}

// Stats returns word and character counts of the document text.
func (s *Session) Stats() (markup.Stats, error) {
	return markup.Count(s.Document().Content)
}

// Wait blocks until every issued fetch has delivered or been dropped.
func (s *Session) Wait() {
	s.fetches.Wait()
}
