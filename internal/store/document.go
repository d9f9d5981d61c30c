// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"

	"github.com/pdiddy/cite-editor/pkg/types"
)

// Fixed keys for the single persisted document.
const (
	KeyDocument      = "document"
	KeyDocumentTitle = "documentTitle"
)

// DocumentStore saves and loads the editor document through a KV.
type DocumentStore struct {
	kv KV
}

// NewDocumentStore wraps kv.
func NewDocumentStore(kv KV) *DocumentStore {
	return &DocumentStore{kv: kv}
}

// Save writes content and title under their fixed keys.
func (d *DocumentStore) Save(ctx context.Context, doc types.Document) error {
	if err := d.kv.Set(ctx, KeyDocument, doc.Content); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	if err := d.kv.Set(ctx, KeyDocumentTitle, doc.Title); err != nil {
		return fmt.Errorf("saving document title: %w", err)
	}
	return nil
}

// Load reads both keys once. An absent key leaves the corresponding field
// at its default (empty content, DefaultDocumentTitle).
func (d *DocumentStore) Load(ctx context.Context) (types.Document, error) {
	doc := types.NewDocument()

	content, ok, err := d.kv.Get(ctx, KeyDocument)
	if err != nil {
		return doc, fmt.Errorf("loading document: %w", err)
	}
	if ok {
		doc.Content = content
	}

	title, ok, err := d.kv.Get(ctx, KeyDocumentTitle)
	if err != nil {
		return doc, fmt.Errorf("loading document title: %w", err)
	}
	if ok {
		doc.Title = title
	}
	return doc, nil
}

// Clear resets the stored document to empty content and the default title.
func (d *DocumentStore) Clear(ctx context.Context) (types.Document, error) {
	doc := types.NewDocument()
	return doc, d.Save(ctx, doc)
}
