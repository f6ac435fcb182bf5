package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonio/jnode"
	"go.jacobcolvin.com/jsonio/parser"
)

func TestParsePrimitives(t *testing.T) {
	t.Parallel()

	tests := map[string]any{
		"true":     true,
		"false":    false,
		"null":     nil,
		`"hi"`:     "hi",
		"42":       int64(42),
		"-17":      int64(-17),
		"3.5":      3.5,
		"1e3":      1e3,
		`"a\nb"`: "a\nb",
	}

	for input, want := range tests {
		input, want := input, want

		t.Run(input, func(t *testing.T) {
			t.Parallel()

			p := parser.New(strings.NewReader(input), parser.Options{})
			got, _, err := p.Parse()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseObjectFields(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"a":1,"b":"two"}`), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, node.Keys())

	a, ok := node.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a)
}

func TestParseMetaKeysLongForm(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"@type":"Point","@id":1,"x":3}`), parser.Options{})
	got, ids, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)
	assert.Equal(t, "Point", node.Type)
	assert.Equal(t, int64(1), node.ID)
	assert.Same(t, node, ids[1])

	x, ok := node.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(3), x)
}

func TestParseMetaKeysShortForm(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"@t":"Point","@i":2,"x":3}`), parser.Options{})
	got, ids, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)
	assert.Equal(t, "Point", node.Type)
	assert.Equal(t, int64(2), node.ID)
	assert.Same(t, node, ids[2])
}

func TestParseRef(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"@ref":5}`), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)

	id, isRef := node.IsRef()
	require.True(t, isRef)
	assert.Equal(t, int64(5), id)
}

func TestParseArrayLikeObject(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"@type":"java.util.ArrayList","@items":[1,2,3]}`), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)
	assert.Equal(t, jnode.KindArrayLike, node.Kind)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, node.Items)
}

func TestParseMapLikeObject(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"@keys":["a","b"],"@items":[1,2]}`), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)
	assert.Equal(t, jnode.KindMapLike, node.Kind)
	assert.Equal(t, []any{"a", "b"}, node.ItemKeys)
	assert.Equal(t, []any{int64(1), int64(2)}, node.Items)
}

func TestParseMismatchedKeysItemsLength(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"@keys":["a"],"@items":[1,2]}`), parser.Options{})
	_, _, err := p.Parse()
	assert.Error(t, err)
}

func TestParseTopLevelArrayWrapsInNode(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`[1,2,3]`), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)
	assert.Equal(t, jnode.KindArrayLike, node.Kind)
	assert.Equal(t, jnode.UnassignedID, node.ID)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, node.Items)
}

func TestParseNestedArrayFieldStaysRaw(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`{"tags":[1,2]}`), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)

	tags, ok := node.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), int64(2)}, tags)
}

func TestParseTypeNameMapReversedOnRead(t *testing.T) {
	t.Parallel()

	opts := parser.Options{TypeNameMap: map[string]string{"com.example.Point": "Pt"}}
	p := parser.New(strings.NewReader(`{"@type":"Pt","x":1}`), opts)
	got, _, err := p.Parse()
	require.NoError(t, err)

	node, ok := got.(*jnode.Node)
	require.True(t, ok)
	assert.Equal(t, "com.example.Point", node.Type)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []string{
		`{"a":1,}`,
		`{"a":1 "b":2}`,
		`[1,2,}`,
		`{"a" 1}`,
		`tru`,
		`"unterminated`,
		`{`,
		`[`,
	}

	for _, input := range tests {
		input := input

		t.Run(input, func(t *testing.T) {
			t.Parallel()

			p := parser.New(strings.NewReader(input), parser.Options{})
			_, _, err := p.Parse()
			assert.Error(t, err)
		})
	}
}

func TestParseTruncatedArrayReportsExpectedSeparator(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`[true, "bunch of ints", 1,2,3,4,5,6,7,8,9,10`), parser.Options{})
	_, _, err := p.Parse()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected ',' or ']' inside array")
}

func TestParseNumberOverflowGuard(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("9", 300)
	p := parser.New(strings.NewReader(huge), parser.Options{})
	_, _, err := p.Parse()
	assert.Error(t, err)
}

func TestParseLargeIntegerFallsBackToFloat(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("9", 30)
	p := parser.New(strings.NewReader(huge), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)
	assert.IsType(t, float64(0), got)
}

func TestParseSurrogatePairEscape(t *testing.T) {
	t.Parallel()

	// U+1F600 GRINNING FACE encoded as a \u-escaped UTF-16 surrogate pair.
	p := parser.New(strings.NewReader("\"\\uD83D\\uDE00\""), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", got)
}

func TestParseDirectUTF8String(t *testing.T) {
	t.Parallel()

	p := parser.New(strings.NewReader(`"café"`), parser.Options{})
	got, _, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}
