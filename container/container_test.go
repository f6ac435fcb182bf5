package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/jsonio/container"
)

func TestInsertionOrderedSet(t *testing.T) {
	t.Parallel()

	s := container.NewInsertionOrderedSet[string]()
	s.Add("c")
	s.Add("a")
	s.Add("b")
	s.Add("a")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"c", "a", "b"}, s.Values())
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("z"))

	s.Remove("a")
	assert.Equal(t, []string{"c", "b"}, s.Values())
	assert.False(t, s.Contains("a"))
}

func TestInsertionOrderedMap(t *testing.T) {
	t.Parallel()

	m := container.NewInsertionOrderedMap[string, int]()
	m.Set("z", 1)
	m.Set("a", 2)
	m.Set("z", 3)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"z", "a"}, m.Keys())

	v, ok := m.Get("z")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	m.Delete("z")
	assert.Equal(t, []string{"a"}, m.Keys())

	_, ok = m.Get("z")
	assert.False(t, ok)
}

func intLess(a, b int) bool { return a < b }

func TestRedBlackSetOrdering(t *testing.T) {
	t.Parallel()

	s := container.NewRedBlackSet(intLess)
	for _, v := range []int{5, 1, 9, 3, 7, 1, 2} {
		s.Add(v)
	}

	assert.Equal(t, 6, s.Len())
	assert.Equal(t, []int{1, 2, 3, 5, 7, 9}, s.Values())
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(42))
}

func TestRedBlackSetLargeInsertStaysOrdered(t *testing.T) {
	t.Parallel()

	s := container.NewRedBlackSet(intLess)
	for v := 100; v > 0; v-- {
		s.Add(v)
	}

	values := s.Values()
	assert.Len(t, values, 100)

	for i := 1; i < len(values); i++ {
		assert.Less(t, values[i-1], values[i])
	}
}

func TestRedBlackMap(t *testing.T) {
	t.Parallel()

	m := container.NewRedBlackMap[int, string](intLess)
	m.Set(3, "c")
	m.Set(1, "a")
	m.Set(2, "b")
	m.Set(1, "updated")

	assert.Equal(t, 3, m.Len())

	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "updated", v)

	var keys []int
	m.Each(func(k int, _ string) bool {
		keys = append(keys, k)

		return true
	})
	assert.Equal(t, []int{1, 2, 3}, keys)
}

func TestRedBlackSetEachStopsEarly(t *testing.T) {
	t.Parallel()

	s := container.NewRedBlackSet(intLess)
	for _, v := range []int{1, 2, 3, 4, 5} {
		s.Add(v)
	}

	var seen []int
	s.Each(func(v int) bool {
		seen = append(seen, v)

		return v < 3
	})

	assert.Equal(t, []int{1, 2, 3}, seen)
}
