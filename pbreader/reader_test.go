package pbreader_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonio/pbreader"
)

func TestReadAdvancesLineAndCol(t *testing.T) {
	t.Parallel()

	r := pbreader.New(strings.NewReader("ab\ncd"))

	for _, want := range []rune{'a', 'b'} {
		c, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, want, c)
	}

	assert.Equal(t, 1, r.Line())
	assert.Equal(t, 2, r.Col())

	c, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, '\n', c)
	assert.Equal(t, 2, r.Line())
	assert.Equal(t, 0, r.Col())
}

func TestUnreadRestoresPosition(t *testing.T) {
	t.Parallel()

	r := pbreader.New(strings.NewReader("a\nb"))

	_, err := r.Read() // 'a'
	require.NoError(t, err)

	c, err := r.Read() // '\n'
	require.NoError(t, err)
	require.Equal(t, '\n', c)
	require.Equal(t, 2, r.Line())
	require.Equal(t, 0, r.Col())

	require.NoError(t, r.Unread(c))
	assert.Equal(t, 1, r.Line())
	assert.Equal(t, 1, r.Col())

	c2, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, '\n', c2)
	assert.Equal(t, 2, r.Line())
	assert.Equal(t, 0, r.Col())
}

func TestUnreadBeyondBufferIsError(t *testing.T) {
	t.Parallel()

	r := pbreader.New(strings.NewReader("x"))

	_, err := r.Read()
	require.NoError(t, err)

	err = r.Unread('x')
	require.NoError(t, err)

	// A second unread with no intervening read has nothing left to undo.
	err = r.Unread('x')
	assert.Error(t, err)
}

func TestReadEOF(t *testing.T) {
	t.Parallel()

	r := pbreader.New(strings.NewReader(""))

	_, err := r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSnippetCapturesRecentInput(t *testing.T) {
	t.Parallel()

	r := pbreader.New(strings.NewReader("hello"))

	for range 5 {
		_, err := r.Read()
		require.NoError(t, err)
	}

	assert.Equal(t, "hello", r.Snippet())
}

func TestSnippetWrapsAtRingSize(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("a", 150) + strings.Repeat("b", 150)
	r := pbreader.New(strings.NewReader(input))

	for range len(input) {
		_, err := r.Read()
		require.NoError(t, err)
	}

	snippet := r.Snippet()
	assert.Len(t, snippet, 200)
	assert.True(t, strings.HasSuffix(snippet, strings.Repeat("b", 150)))
}
