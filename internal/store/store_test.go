// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-editor/pkg/types"
)

func openTestKV(t *testing.T) (*SQLiteKV, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "cite.db")
	kv, err := Open(types.StoreConfig{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv, path
}

func TestSQLiteKV_GetMissing(t *testing.T) {
	kv, _ := openTestKV(t)

	v, ok, err := kv.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteKV_SetOverwrites(t *testing.T) {
	kv, _ := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "first"))
	require.NoError(t, kv.Set(ctx, "k", "second"))

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestSQLiteKV_EmptyValueIsPresent(t *testing.T) {
	kv, _ := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", ""))
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestDocumentStore_LoadDefaults(t *testing.T) {
	kv, _ := openTestKV(t)
	ds := NewDocumentStore(kv)

	doc, err := ds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", doc.Content)
	assert.Equal(t, types.DefaultDocumentTitle, doc.Title)
}

func TestDocumentStore_RoundTripAcrossReopen(t *testing.T) {
	kv, path := openTestKV(t)
	ctx := context.Background()

	want := types.Document{
		Content: `<p>See <b>Albert Einstein (Relativity)</b> &amp; more</p>`,
		Title:   "Thesis: Chapter 1",
	}
	require.NoError(t, NewDocumentStore(kv).Save(ctx, want))
	require.NoError(t, kv.Close())

	reopened, err := Open(types.StoreConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := NewDocumentStore(reopened).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDocumentStore_PartialKeys(t *testing.T) {
	kv, _ := openTestKV(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyDocument, "<p>only content</p>"))

	doc, err := NewDocumentStore(kv).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>only content</p>", doc.Content)
	assert.Equal(t, types.DefaultDocumentTitle, doc.Title)
}

func TestDocumentStore_Clear(t *testing.T) {
	kv, _ := openTestKV(t)
	ctx := context.Background()
	ds := NewDocumentStore(kv)
	require.NoError(t, ds.Save(ctx, types.Document{Content: "x", Title: "y"}))

	cleared, err := ds.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.NewDocument(), cleared)

	doc, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.NewDocument(), doc)
}
