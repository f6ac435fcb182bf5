package writer_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonio/codec"
	"go.jacobcolvin.com/jsonio/typeinfo"
	"go.jacobcolvin.com/jsonio/writer"
)

func encode(t *testing.T, v any, opts writer.Options) string {
	t.Helper()

	var buf bytes.Buffer

	w := writer.New(&buf, typeinfo.NewRegistry(), codec.NewRegistry(), opts)
	require.NoError(t, w.Write(v, nil))

	return buf.String()
}

func TestWriteBareStringArray(t *testing.T) {
	t.Parallel()

	got := encode(t, []string{"Hello, World"}, writer.Options{})
	assert.Equal(t, `["Hello, World"]`, got)
}

func TestWriteEmptyArray(t *testing.T) {
	t.Parallel()

	got := encode(t, []int{}, writer.Options{})
	assert.Equal(t, `[]`, got)
}

type employee struct {
	Name    string
	Manager *employee
}

// A root value with no declared type carries no context a reader could
// use to pick its concrete type, so @type is always shown there even
// though a field whose declared type already pins the type down omits it.
func TestWriteSelfReferentialCycle(t *testing.T) {
	t.Parallel()

	bob := &employee{Name: "Bob"}
	bob.Manager = bob

	got := encode(t, bob, writer.Options{})
	assert.Equal(t, `{"@id":1,"@type":"writer_test.employee","Name":"Bob","Manager":{"@ref":1}}`, got)
}

type listNode struct {
	Value string
	Next  *listNode
}

func TestWriteSharedPointerEmitsIdOnSecondReference(t *testing.T) {
	t.Parallel()

	tail := &listNode{Value: "tail"}
	list := []*listNode{{Value: "head", Next: tail}, tail}

	got := encode(t, list, writer.Options{})
	assert.Equal(t, `[{"Value":"head","Next":{"@id":1,"Value":"tail","Next":null}},{"@ref":1}]`, got)
}

func TestWriteUnsharedPointerFieldOmitsType(t *testing.T) {
	t.Parallel()

	type holder struct {
		Child *listNode
	}

	got := encode(t, &holder{Child: &listNode{Value: "solo"}}, writer.Options{})
	assert.Equal(t, `{"@type":"writer_test.holder","Child":{"Value":"solo","Next":null}}`, got)
}

func TestWritePrettyPrint(t *testing.T) {
	t.Parallel()

	got := encode(t, &listNode{Value: "solo"}, writer.Options{PrettyPrint: true})
	assert.Equal(t, "{\n\t\"@type\": \"writer_test.listNode\",\n\t\"Value\": \"solo\",\n\t\"Next\": null\n}", got)
}

func TestWriteShortMetaKeys(t *testing.T) {
	t.Parallel()

	bob := &employee{Name: "Bob"}
	bob.Manager = bob

	got := encode(t, bob, writer.Options{ShortMetaKeys: true})
	assert.Equal(t, `{"@i":1,"@t":"writer_test.employee","Name":"Bob","Manager":{"@r":1}}`, got)
}

type animal struct {
	Name string
}

type dog struct {
	animal
	Breed string
}

func TestWriteShowsTypeForInterfaceField(t *testing.T) {
	t.Parallel()

	type holder struct {
		Pet any
	}

	got := encode(t, &holder{Pet: dog{animal: animal{Name: "Rex"}, Breed: "Lab"}}, writer.Options{})
	assert.Contains(t, got, `"@type":"writer_test.dog"`)
	assert.Contains(t, got, `"Name":"Rex"`)
	assert.Contains(t, got, `"Breed":"Lab"`)
}

func TestWriteOmitsTypeWhenDeclaredMatchesRuntime(t *testing.T) {
	t.Parallel()

	type holder struct {
		Pet dog
	}

	got := encode(t, &holder{Pet: dog{animal: animal{Name: "Rex"}, Breed: "Lab"}}, writer.Options{})
	assert.NotContains(t, got, `"@type":"writer_test.dog"`)
}

func TestWriteFieldSpecifiersRestrictsFields(t *testing.T) {
	t.Parallel()

	type petHolder struct {
		Pet dog
	}

	got := encode(t, petHolder{Pet: dog{animal: animal{Name: "Rex"}, Breed: "Lab"}}, writer.Options{
		FieldSpecifiers: map[reflect.Type][]string{
			reflect.TypeOf(dog{}): {"Breed"},
		},
	})
	assert.Contains(t, got, `"Pet":{"Breed":"Lab"}`)
	assert.NotContains(t, got, "Rex")
}

func TestWriteStringKeyedMapCompactForm(t *testing.T) {
	t.Parallel()

	got := encode(t, map[string]int{"a": 1}, writer.Options{})
	assert.Equal(t, `{"a":1}`, got)
}

func TestWriteNonStringKeyedMapUsesKeysItems(t *testing.T) {
	t.Parallel()

	got := encode(t, map[int]string{1: "one"}, writer.Options{})
	assert.Equal(t, `{"@keys":[1],"@items":["one"]}`, got)
}

func TestWriteStringEscaping(t *testing.T) {
	t.Parallel()

	got := encode(t, []string{"line\nbreak \"quoted\" café"}, writer.Options{})
	assert.Equal(t, `["line\nbreak \"quoted\" café"]`, got)
}

func TestWriteControlCharacterEscaping(t *testing.T) {
	t.Parallel()

	got := encode(t, []string{"a\x01b"}, writer.Options{})
	assert.Equal(t, "[\"a\\u0001b\"]", got)
}

func TestWriteLongAsString(t *testing.T) {
	t.Parallel()

	got := encode(t, []int64{9007199254740993}, writer.Options{WriteLongsAsStrings: true})
	assert.Equal(t, `["9007199254740993"]`, got)
}

func TestWriteAlwaysShowType(t *testing.T) {
	t.Parallel()

	type holder struct {
		Pet dog
	}

	got := encode(t, &holder{Pet: dog{animal: animal{Name: "Rex"}, Breed: "Lab"}}, writer.Options{AlwaysShowType: true})
	assert.Contains(t, got, `"@type":"writer_test.dog"`)
}
