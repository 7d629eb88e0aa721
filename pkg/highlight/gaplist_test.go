package highlight

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func values[T any](l *gapList[T]) []T {
	out := make([]T, 0, l.Len())
	for i := range l.Len() {
		out = append(out, l.At(i))
	}
	return out
}

func TestGapList_InsertRemove(t *testing.T) {
	t.Parallel()

	var l gapList[int]
	l.Insert(0, 1, 2, 3)
	l.Insert(3, 6)
	l.Insert(3, 4, 5)
	l.Insert(0, 0)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, values(&l))

	l.Remove(2, 5)
	assert.Equal(t, []int{0, 1, 5, 6}, values(&l))

	l.Set(1, 9)
	assert.Equal(t, 9, l.At(1))

	l.Remove(0, l.Len())
	assert.Equal(t, 0, l.Len())
}

func TestGapList_Grow(t *testing.T) {
	t.Parallel()

	var l gapList[int]
	for i := range 100 {
		l.Insert(l.Len(), i)
	}
	require.Equal(t, 100, l.Len())
	assert.GreaterOrEqual(t, l.Cap(), 100)
	for i := range 100 {
		assert.Equal(t, i, l.At(i))
	}
}

func TestGapList_ShrinkToFit(t *testing.T) {
	t.Parallel()

	var l gapList[string]
	l.Insert(0, "a", "b", "c", "d")
	l.Remove(1, 2)
	require.Greater(t, l.Cap(), l.Len())

	l.ShrinkToFit()
	assert.Equal(t, 3, l.Cap())
	assert.Equal(t, []string{"a", "c", "d"}, values(&l))

	l.Insert(1, "x")
	assert.Equal(t, []string{"a", "x", "c", "d"}, values(&l))
}

func TestGapList_Clear(t *testing.T) {
	t.Parallel()

	var l gapList[int]
	l.Insert(0, 1, 2, 3)
	l.Clear()
	assert.Equal(t, 0, l.Len())
	l.Insert(0, 7)
	assert.Equal(t, []int{7}, values(&l))
}

func TestGapList_OutOfRangePanics(t *testing.T) {
	t.Parallel()

	var l gapList[int]
	l.Insert(0, 1, 2)

	assert.Panics(t, func() { l.At(2) })
	assert.Panics(t, func() { l.At(-1) })
	assert.Panics(t, func() { l.Set(5, 0) })
	assert.Panics(t, func() { l.Insert(3, 0) })
	assert.Panics(t, func() { l.Remove(1, 3) })
	assert.Panics(t, func() { l.Remove(2, 1) })
}

func TestGapList_MatchesSlice(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		var l gapList[int]
		var model []int

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for step := range steps {
			if len(model) > 0 && rapid.Bool().Draw(rt, "remove") {
				i := rapid.IntRange(0, len(model)-1).Draw(rt, "i")
				j := rapid.IntRange(i, len(model)).Draw(rt, "j")
				l.Remove(i, j)
				model = slices.Delete(model, i, j)
			} else {
				i := rapid.IntRange(0, len(model)).Draw(rt, "at")
				n := rapid.IntRange(1, 40).Draw(rt, "n")
				vs := make([]int, n)
				for k := range vs {
					vs[k] = step*100 + k
				}
				l.Insert(i, vs...)
				model = slices.Insert(model, i, vs...)
			}
			require.Equal(rt, len(model), l.Len())
			require.Equal(rt, model, values(&l))
		}
	})
}
