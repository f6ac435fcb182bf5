package jsonio_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonio"
	"go.jacobcolvin.com/jsonio/stringtest"
)

func TestEncodeBareStringArray(t *testing.T) {
	t.Parallel()

	got, err := jsonio.Encode([]string{"Hello, World"})
	require.NoError(t, err)
	assert.Equal(t, `["Hello, World"]`, got)
}

type employee struct {
	Name    string
	Manager *employee
}

func TestRoundTripSelfReferentialCycle(t *testing.T) {
	t.Parallel()

	bob := &employee{Name: "Bob"}
	bob.Manager = bob

	encoded, err := jsonio.Encode(bob)
	require.NoError(t, err)
	assert.Contains(t, encoded, `"@id":1`)
	assert.Contains(t, encoded, `{"@ref":1}`)

	var decoded employee

	require.NoError(t, jsonio.Decode(encoded, &decoded))
	assert.Equal(t, "Bob", decoded.Name)
	assert.Same(t, &decoded, decoded.Manager)
}

type listNode struct {
	Value string
	Next  *listNode
}

func TestRoundTripForwardReference(t *testing.T) {
	t.Parallel()

	src := `[{"@id":1,"Value":"head","Next":{"@ref":2}},{"@id":2,"Value":"tail"}]`

	var nodes []*listNode

	require.NoError(t, jsonio.Decode(src, &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "head", nodes[0].Value)
	assert.Same(t, nodes[1], nodes[0].Next)
}

func TestDecodeUnknownTypeErrorsByDefault(t *testing.T) {
	t.Parallel()

	var target any

	err := jsonio.Decode(`{"@type":"non.existent.Class"}`, &target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class")
	assert.Contains(t, err.Error(), "non.existent.Class")
}

func TestDecodeUnknownTypeDegradesGracefullyWithUseMaps(t *testing.T) {
	t.Parallel()

	var target any

	err := jsonio.Decode(`{"@type":"non.existent.Class","Name":"x"}`, &target, jsonio.UseMaps())
	require.NoError(t, err)
}

func TestShortMetaKeysRoundTrip(t *testing.T) {
	t.Parallel()

	bob := &employee{Name: "Bob"}
	bob.Manager = bob

	encoded, err := jsonio.Encode(bob, jsonio.ShortMetaKeys())
	require.NoError(t, err)
	assert.Contains(t, encoded, `"@i":1`)
	assert.Contains(t, encoded, `{"@r":1}`)

	var decoded employee

	require.NoError(t, jsonio.Decode(encoded, &decoded, jsonio.ShortMetaKeys()))
	assert.Equal(t, "Bob", decoded.Name)
}

type flagged struct {
	Active bool
}

func TestPrimitiveCoercionEmptyStringToFalse(t *testing.T) {
	t.Parallel()

	var f flagged

	require.NoError(t, jsonio.Decode(`{"Active":""}`, &f))
	assert.False(t, f.Active)
}

type counted struct {
	Count int64
}

func TestPrimitiveCoercionNumericString(t *testing.T) {
	t.Parallel()

	var c counted

	require.NoError(t, jsonio.Decode(`{"Count":"42"}`, &c))
	assert.Equal(t, int64(42), c.Count)
}

func TestMapFidelityNonStringKeys(t *testing.T) {
	t.Parallel()

	var m map[int64]string

	require.NoError(t, jsonio.Decode(`{"@keys":[1,2],"@items":["one","two"]}`, &m))
	assert.Equal(t, map[int64]string{1: "one", 2: "two"}, m)

	encoded, err := jsonio.Encode(m)
	require.NoError(t, err)

	var roundTripped map[int64]string

	require.NoError(t, jsonio.Decode(encoded, &roundTripped))
	assert.Equal(t, m, roundTripped)
}

func TestBackToBackJSONEquivalenceForUseMaps(t *testing.T) {
	t.Parallel()

	const src = `["Hello, World"]`

	val, err := jsonio.DecodeAny(src, jsonio.UseMaps())
	require.NoError(t, err)

	got, err := jsonio.Encode(val)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestRegisterTypeOverridesInterfaceField(t *testing.T) {
	t.Parallel()

	type animal struct {
		Name string
	}

	type dog struct {
		animal
		Breed string
	}

	type holder struct {
		Pet any
	}

	var h holder

	err := jsonio.Decode(
		`{"Pet":{"@type":"Dog","Name":"Rex","Breed":"Lab"}}`,
		&h,
		jsonio.RegisterType("Dog", reflect.TypeOf(dog{})),
	)
	require.NoError(t, err)

	got, ok := h.Pet.(dog)
	require.True(t, ok)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "Lab", got.Breed)
}

type point struct {
	X int
	Y int
}

func TestEncodePrettyPrintIndentsFields(t *testing.T) {
	t.Parallel()

	got, err := jsonio.Encode(point{X: 1, Y: 2}, jsonio.PrettyPrint())
	require.NoError(t, err)

	want := stringtest.JoinLF(
		"{",
		"\t\"@type\": \"jsonio_test.point\",",
		"\t\"X\": 1,",
		"\t\"Y\": 2",
		"}",
	)
	assert.Equal(t, want, got)
}
