package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

func TestExtractor_Supports(t *testing.T) {
	e := NewExtractor()

	assert.True(t, e.Supports("notes.txt"))
	assert.True(t, e.Supports("README.MD"))
	assert.True(t, e.Supports("schedule.csv"))
	assert.False(t, e.Supports("spec.pdf"))
	assert.False(t, e.Supports("archive.zip"))
	assert.False(t, e.Supports("noextension"))
}

func TestExtractor_SinglePage(t *testing.T) {
	e := NewExtractor()

	pages, err := e.Extract(context.Background(), []byte("line one\nline two"))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "line one\nline two", pages[0].Text)
}

func TestExtractor_NormalisesLineEndings(t *testing.T) {
	e := NewExtractor()

	pages, err := e.Extract(context.Background(), []byte("a\r\nb\rc"))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "a\nb\nc", pages[0].Text)
}

func TestExtractor_RejectsInvalidUTF8(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
