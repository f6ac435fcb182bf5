package typeinfo_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jsonio/typeinfo"
)

type base struct {
	Name string
	ID   int
}

type derived struct {
	base
	ID   string // shadows base.ID
	City string
}

func TestFieldsFlattensEmbedded(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()
	fields := r.Fields(reflect.TypeOf(derived{}))

	names := map[string]bool{}
	for _, f := range fields {
		names[f.Name] = true
	}

	assert.True(t, names["Name"])
	assert.True(t, names["City"])
	assert.True(t, names["ID"])
	assert.True(t, names["base.ID"])
}

func TestFieldsCachesResult(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()
	ty := reflect.TypeOf(base{})

	first := r.Fields(ty)
	second := r.Fields(ty)
	assert.Equal(t, first, second)
}

type withCollections struct {
	Tags  []string
	Attrs map[string]int
}

func TestNewInitializesCollectionsNonNil(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()
	v, err := r.New(reflect.TypeOf(withCollections{}))
	require.NoError(t, err)

	out := v.Interface().(withCollections)
	assert.NotNil(t, out.Tags)
	assert.NotNil(t, out.Attrs)
	assert.Len(t, out.Tags, 0)
}

func TestNewSensibleDefaultForTime(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()
	v, err := r.New(reflect.TypeOf(time.Time{}))
	require.NoError(t, err)
	assert.IsType(t, time.Time{}, v.Interface())
}

func TestNewRejectsInterface(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()
	var iface any

	_, err := r.New(reflect.TypeOf(&iface).Elem())
	assert.Error(t, err)
}

func TestNewAllocatesMapAndSlice(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()

	mv, err := r.New(reflect.TypeOf(map[string]int{}))
	require.NoError(t, err)
	assert.False(t, mv.IsNil())

	sv, err := r.New(reflect.TypeOf([]int{}))
	require.NoError(t, err)
	assert.False(t, sv.IsNil())
}

func TestDescribeTypeStruct(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()
	schema := r.DescribeType(reflect.TypeOf(base{}))

	assert.Equal(t, "object", schema.Type)
	require.Contains(t, schema.Properties, "Name")
	assert.Equal(t, "string", schema.Properties["Name"].Type)
	require.Contains(t, schema.Properties, "ID")
	assert.Equal(t, "integer", schema.Properties["ID"].Type)
}

type recursive struct {
	Next *recursive
}

func TestDescribeTypeHandlesRecursion(t *testing.T) {
	t.Parallel()

	r := typeinfo.NewRegistry()

	assert.NotPanics(t, func() {
		r.DescribeType(reflect.TypeOf(recursive{}))
	})
}
