// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package editor implements the citation-insertion protocol of the editing
// session: a query tracker that watches keystrokes for the "@" trigger, a
// candidate panel fed by an asynchronous suggestion provider, and the
// operation that splices the chosen citation back into the document.
//
// The rich-text widget itself is abstracted as a Surface: anything that
// exposes its content, a caret offset, and basic insert/delete satisfies it.
// TextBuffer is the built-in implementation.
//
// See docs/ARCHITECTURE § Editor Surface.
package editor
