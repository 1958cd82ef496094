package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

func TestKeywords_Add(t *testing.T) {
	store := &mockKeywordStore{}
	svc := NewKeywords(store, nil)

	kw, err := svc.Add(context.Background(), "u1", "BOD", "basis of design sections")
	require.NoError(t, err)

	assert.NotEmpty(t, kw.ID)
	assert.Equal(t, "u1", kw.UserID)
	assert.Equal(t, "BOD", kw.Term)
	assert.Equal(t, "basis of design sections", kw.Instruction)

	saved, err := store.ListKeywords(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, kw.ID, saved[0].ID)
}

func TestKeywords_AddEmptyTerm(t *testing.T) {
	svc := NewKeywords(&mockKeywordStore{}, nil)

	_, err := svc.Add(context.Background(), "u1", "   ", "instruction")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKeywords_ListScopedToUser(t *testing.T) {
	store := &mockKeywordStore{}
	svc := NewKeywords(store, nil)

	_, err := svc.Add(context.Background(), "u1", "BOD", "")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "u2", "HVAC", "")
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "BOD", mine[0].Term)
}

func TestKeywords_Delete(t *testing.T) {
	store := &mockKeywordStore{}
	svc := NewKeywords(store, nil)

	kw, err := svc.Add(context.Background(), "u1", "BOD", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), kw.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), kw.ID), domain.ErrNotFound)
}

func TestKeywords_SuggestWithoutCompletion(t *testing.T) {
	svc := NewKeywords(&mockKeywordStore{}, nil)
	_, err := svc.Suggest(context.Background(), "content")
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
}

func TestKeywords_Suggest(t *testing.T) {
	completion := &mockCompletion{
		response: `[{"term":"BOD","instruction":"basis of design"},{"term":"VAV","instruction":"variable air volume"}]`,
	}
	svc := NewKeywords(&mockKeywordStore{}, completion)

	keywords, err := svc.Suggest(context.Background(), "Section 23 36 00 Air Terminal Units")
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "BOD", keywords[0].Term)
	assert.Equal(t, "basis of design", keywords[0].Instruction)
	assert.Equal(t, "VAV", keywords[1].Term)

	// Suggestions are returned unsaved.
	assert.Empty(t, keywords[0].ID)

	require.Len(t, completion.prompts, 1)
	assert.Contains(t, completion.prompts[0], "Section 23 36 00 Air Terminal Units")
}

func TestKeywords_SuggestStripsCodeFences(t *testing.T) {
	completion := &mockCompletion{
		response: "```json\n[{\"term\":\"BOD\",\"instruction\":\"basis of design\"}]\n```",
	}
	svc := NewKeywords(&mockKeywordStore{}, completion)

	keywords, err := svc.Suggest(context.Background(), "content")
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "BOD", keywords[0].Term)
}

func TestKeywords_SuggestDropsInvalidEntries(t *testing.T) {
	completion := &mockCompletion{
		response: `[{"term":"","instruction":"orphan"},{"term":"BOD","instruction":"kept"}]`,
	}
	svc := NewKeywords(&mockKeywordStore{}, completion)

	keywords, err := svc.Suggest(context.Background(), "content")
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "BOD", keywords[0].Term)
}

func TestKeywords_SuggestMalformedOutput(t *testing.T) {
	completion := &mockCompletion{response: "I could not find any keywords, sorry."}
	svc := NewKeywords(&mockKeywordStore{}, completion)

	_, err := svc.Suggest(context.Background(), "content")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
