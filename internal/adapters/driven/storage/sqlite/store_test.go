package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same directory must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := &domain.Document{
		ID:       "doc-1",
		UserID:   "u1",
		Filename: "spec.pdf",
	}
	require.NoError(t, docs.SaveDocument(ctx, doc))
	assert.False(t, doc.CreatedAt.IsZero(), "save fills timestamps")

	got, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "spec.pdf", got.Filename)
	assert.WithinDuration(t, doc.CreatedAt, got.CreatedAt, time.Second)
}

func TestDocumentStore_SaveUpserts(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", UserID: "u1", Filename: "a.pdf"}
	require.NoError(t, docs.SaveDocument(ctx, doc))

	doc.Filename = "b.pdf"
	require.NoError(t, docs.SaveDocument(ctx, doc))

	got, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "b.pdf", got.Filename)

	list, err := docs.ListDocuments(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.DocumentStore().GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListScopedToUser(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{ID: "d1", UserID: "u1", Filename: "a.pdf"}))
	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{ID: "d2", UserID: "u2", Filename: "b.pdf"}))

	list, err := docs.ListDocuments(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "d1", list[0].ID)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{ID: "d1", UserID: "u1", Filename: "a.pdf"}))
	require.NoError(t, docs.DeleteDocument(ctx, "d1"))

	_, err := docs.GetDocument(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, docs.DeleteDocument(ctx, "d1"), domain.ErrNotFound)
}

func TestKeywordStore_SaveListDelete(t *testing.T) {
	store := newTestStore(t)
	keywords := store.KeywordStore()
	ctx := context.Background()

	first := &domain.Keyword{ID: "k1", UserID: "u1", Term: "BOD", Instruction: "basis of design"}
	second := &domain.Keyword{ID: "k2", UserID: "u1", Term: "VAV", Instruction: "air terminal units"}
	other := &domain.Keyword{ID: "k3", UserID: "u2", Term: "HVAC"}

	require.NoError(t, keywords.SaveKeyword(ctx, first))
	require.NoError(t, keywords.SaveKeyword(ctx, second))
	require.NoError(t, keywords.SaveKeyword(ctx, other))

	list, err := keywords.ListKeywords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BOD", list[0].Term, "insertion order preserved")
	assert.Equal(t, "VAV", list[1].Term)

	require.NoError(t, keywords.DeleteKeyword(ctx, "k1"))
	list, err = keywords.ListKeywords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "VAV", list[0].Term)

	assert.ErrorIs(t, keywords.DeleteKeyword(ctx, "k1"), domain.ErrNotFound)
}

func TestKeywordStore_SaveUpserts(t *testing.T) {
	store := newTestStore(t)
	keywords := store.KeywordStore()
	ctx := context.Background()

	kw := &domain.Keyword{ID: "k1", UserID: "u1", Term: "BOD", Instruction: "old"}
	require.NoError(t, keywords.SaveKeyword(ctx, kw))

	kw.Instruction = "new"
	require.NoError(t, keywords.SaveKeyword(ctx, kw))

	list, err := keywords.ListKeywords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Instruction)
}
