package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

func TestKeywordStore_SaveAndList(t *testing.T) {
	store := NewKeywordStore()
	ctx := context.Background()

	require.NoError(t, store.SaveKeyword(ctx, &domain.Keyword{ID: "k1", UserID: "u1", Term: "BOD"}))
	require.NoError(t, store.SaveKeyword(ctx, &domain.Keyword{ID: "k2", UserID: "u1", Term: "VAV"}))
	require.NoError(t, store.SaveKeyword(ctx, &domain.Keyword{ID: "k3", UserID: "u2", Term: "HVAC"}))

	list, err := store.ListKeywords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BOD", list[0].Term, "insertion order preserved")
	assert.Equal(t, "VAV", list[1].Term)
}

func TestKeywordStore_SaveUpsertsByID(t *testing.T) {
	store := NewKeywordStore()
	ctx := context.Background()

	require.NoError(t, store.SaveKeyword(ctx, &domain.Keyword{ID: "k1", UserID: "u1", Term: "BOD", Instruction: "old"}))
	require.NoError(t, store.SaveKeyword(ctx, &domain.Keyword{ID: "k1", UserID: "u1", Term: "BOD", Instruction: "new"}))

	list, err := store.ListKeywords(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Instruction)
}

func TestKeywordStore_Delete(t *testing.T) {
	store := NewKeywordStore()
	ctx := context.Background()

	require.NoError(t, store.SaveKeyword(ctx, &domain.Keyword{ID: "k1", UserID: "u1", Term: "BOD"}))
	require.NoError(t, store.DeleteKeyword(ctx, "k1"))
	assert.ErrorIs(t, store.DeleteKeyword(ctx, "k1"), domain.ErrNotFound)

	list, err := store.ListKeywords(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
