// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import "unicode/utf8"

// Surface is the text-editing component the session drives. Offsets are
// byte offsets into Content.
type Surface interface {
	Content() string
	SetContent(content string)
	Caret() int
	SetCaret(offset int)
	// Insert places text at the caret and moves the caret past it.
	Insert(text string)
	// DeleteBack removes the rune before the caret.
	DeleteBack()
}

// TextBuffer is an in-memory Surface over a markup string.
type TextBuffer struct {
	content string
	caret   int
}

// NewTextBuffer returns a buffer holding content with the caret at the end.
func NewTextBuffer(content string) *TextBuffer {
	return &TextBuffer{content: content, caret: len(content)}
}

func (b *TextBuffer) Content() string { return b.content }

// SetContent replaces the content and clamps the caret into it.
func (b *TextBuffer) SetContent(content string) {
	b.content = content
	b.caret = b.clamp(b.caret)
}

func (b *TextBuffer) Caret() int { return b.caret }

// SetCaret moves the caret, clamped to the content and snapped back to a
// rune boundary.
func (b *TextBuffer) SetCaret(offset int) {
	b.caret = b.clamp(offset)
}

func (b *TextBuffer) Insert(text string) {
	b.content = b.content[:b.caret] + text + b.content[b.caret:]
	b.caret += len(text)
}

func (b *TextBuffer) DeleteBack() {
	if b.caret == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.content[:b.caret])
	b.content = b.content[:b.caret-size] + b.content[b.caret:]
	b.caret -= size
}

func (b *TextBuffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.content) {
		return len(b.content)
	}
	for offset > 0 && offset < len(b.content) && !utf8.RuneStart(b.content[offset]) {
		offset--
	}
	return offset
}
