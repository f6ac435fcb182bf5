package codec_test

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonio/codec"
)

type fakeStack struct{}

func (fakeStack) ResolveValue(raw any, want reflect.Type) (any, error) { return raw, nil }

type recorder struct {
	out string
}

func (r *recorder) WriteRaw(s string) error {
	r.out += s

	return nil
}

func TestScalarCoercions(t *testing.T) {
	t.Parallel()

	r := codec.NewRegistry()

	readBool, ok := r.ResolveReader(reflect.TypeOf(false))
	require.True(t, ok)

	v, err := readBool("", fakeStack{})
	require.NoError(t, err)
	assert.Equal(t, false, v)

	readInt, ok := r.ResolveReader(reflect.TypeOf(int64(0)))
	require.True(t, ok)

	v, err = readInt("42", fakeStack{})
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestScalarWriterPrimitiveForm(t *testing.T) {
	t.Parallel()

	r := codec.NewRegistry()
	stringType := reflect.TypeOf("")

	assert.True(t, r.HasPrimitiveForm(stringType))

	write, ok := r.ResolveWriter(stringType)
	require.True(t, ok)

	rec := &recorder{}
	require.NoError(t, write("hi", false, rec))
	assert.Equal(t, `"hi"`, rec.out)
}

func TestDateParsingISO(t *testing.T) {
	t.Parallel()

	tm, err := codec.ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2024, tm.Year())
	assert.Equal(t, time.March, tm.Month())
	assert.Equal(t, 5, tm.Day())
}

func TestDateParsingNamedMonth(t *testing.T) {
	t.Parallel()

	tm, err := codec.ParseDate("05 Mar 2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, tm.Year())
	assert.Equal(t, time.March, tm.Month())
	assert.Equal(t, 5, tm.Day())
}

func TestDateParsingUnixStyle(t *testing.T) {
	t.Parallel()

	tm, err := codec.ParseDate("Tue Mar 05 10:20:30 UTC 2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, tm.Year())
	assert.Equal(t, 10, tm.Hour())
	assert.Equal(t, 30, tm.Second())
}

func TestDateParsingTimeOnly(t *testing.T) {
	t.Parallel()

	tm, err := codec.ParseDate("10:20:30.500Z")
	require.NoError(t, err)
	assert.Equal(t, 10, tm.Hour())
	assert.Equal(t, 20, tm.Minute())
	assert.Equal(t, 30, tm.Second())
}

func TestDateParsingRejectsInvalidMonth(t *testing.T) {
	t.Parallel()

	_, err := codec.ParseDate("2024-13-05")
	assert.Error(t, err)
}

func TestDateParsingRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := codec.ParseDate("not a date")
	assert.Error(t, err)
}

func TestBigIntCoercion(t *testing.T) {
	t.Parallel()

	r := codec.NewRegistry()
	read, ok := r.ResolveReader(reflect.TypeOf((*big.Int)(nil)))
	require.True(t, ok)

	v, err := read("123456789012345678901234567890", fakeStack{})
	require.NoError(t, err)

	n, ok := v.(*big.Int)
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", n.String())

	v, err = read("", fakeStack{})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), v)
}

func TestBigFloatCoercionFromFloat(t *testing.T) {
	t.Parallel()

	r := codec.NewRegistry()
	read, ok := r.ResolveReader(reflect.TypeOf((*big.Float)(nil)))
	require.True(t, ok)

	v, err := read(3.5, fakeStack{})
	require.NoError(t, err)

	f, ok := v.(*big.Float)
	require.True(t, ok)

	got, _ := f.Float64()
	assert.InDelta(t, 3.5, got, 0.0001)
}

type animal struct {
	Name string
}

type dog struct {
	animal
	Breed string
}

func TestResolveReaderByEmbeddingDistance(t *testing.T) {
	t.Parallel()

	r := codec.NewRegistry()
	r.RegisterReader(reflect.TypeOf(animal{}), func(raw any, _ codec.Stack) (any, error) {
		return animal{Name: "generic"}, nil
	})

	_, ok := r.ResolveReader(reflect.TypeOf(dog{}))
	assert.True(t, ok)

	_, ok = r.ResolveReader(reflect.TypeOf(42))
	assert.False(t, ok)
}
