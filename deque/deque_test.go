package deque

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func implementations(capacity int) map[string]Deque[int] {
	return map[string]Deque[int]{
		"array": NewArrDeque[int](capacity),
		"list":  NewListDeque[int](capacity),
	}
}

func contents(d Deque[int]) []int {
	var out []int
	d.Traverse(func(i int, v int) {
		out = append(out, v)
	})
	return out
}

func TestNew(t *testing.T) {
	d, err := New[int](ListKind, 2)
	require.NoError(t, err)
	assert.IsType(t, &ListDeque[int]{}, d)
	assert.Equal(t, 2, d.Capacity())

	d, err = New[int]("", 4)
	require.NoError(t, err)
	assert.IsType(t, &ArrDeque[int]{}, d)

	_, err = New[int]("tree", 4)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDeque_AddLastEvictsOldest(t *testing.T) {
	for name, d := range implementations(3) {
		assert.True(t, d.IsEmpty(), name)
		for i := 1; i <= 5; i++ {
			d.AddLast(i)
		}
		assert.True(t, d.IsFull(), name)
		assert.Equal(t, 3, d.Size(), name)
		assert.Equal(t, []int{3, 4, 5}, contents(d), name)
		assert.Equal(t, 3, d.Get(0), name)
		assert.Equal(t, 5, d.Get(2), name)
	}
}

func TestDeque_AddFirstEvictsNewest(t *testing.T) {
	for name, d := range implementations(3) {
		d.AddLast(1)
		d.AddLast(2)
		d.AddFirst(0)
		d.AddFirst(-1)
		assert.Equal(t, []int{-1, 0, 1}, contents(d), name)
	}
}

func TestDeque_Remove(t *testing.T) {
	for name, d := range implementations(4) {
		_, ok := d.RemoveFirst()
		assert.False(t, ok, name)
		_, ok = d.RemoveLast()
		assert.False(t, ok, name)

		for i := 0; i < 4; i++ {
			d.AddLast(i)
		}
		v, ok := d.RemoveFirst()
		assert.True(t, ok, name)
		assert.Equal(t, 0, v, name)
		v, _ = d.RemoveLast()
		assert.Equal(t, 3, v, name)
		assert.Equal(t, []int{1, 2}, contents(d), name)

		d.AddFirst(7)
		assert.Equal(t, []int{7, 1, 2}, contents(d), name)
		assert.Panics(t, func() { d.Get(3) }, name)
	}
}

func TestDeque_TraverseRange(t *testing.T) {
	for name, d := range implementations(5) {
		for i := 0; i < 8; i++ {
			d.AddLast(i)
		}
		var idx, got []int
		d.TraverseRange(1, 4, func(i int, v int) {
			idx = append(idx, i)
			got = append(got, v)
		})
		assert.Equal(t, []int{1, 2, 3}, idx, name)
		assert.Equal(t, []int{4, 5, 6}, got, name)

		got = nil
		d.TraverseRange(3, 10, func(i int, v int) { got = append(got, v) })
		assert.Equal(t, []int{6, 7}, got, name)
	}
}

func BenchmarkArrDeque_AddLast(b *testing.B) {
	d := NewArrDeque[float64](4000)
	for i := 0; i < b.N; i++ {
		d.AddLast(1000)
	}
}

func BenchmarkListDeque_AddLast(b *testing.B) {
	d := NewListDeque[float64](4000)
	for i := 0; i < b.N; i++ {
		d.AddLast(1000)
	}
}
