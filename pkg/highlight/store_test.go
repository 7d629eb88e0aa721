package highlight_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/highlight"
)

var (
	attrA = highlight.NewAttrs("class", "a")
	attrB = highlight.NewAttrs("class", "b")
	attrC = highlight.NewAttrs("class", "c")
	attrD = highlight.NewAttrs("class", "d")
)

func run(start, end int, attrs highlight.AttributeSet) highlight.Run {
	return highlight.Run{Start: start, End: end, Attrs: attrs}
}

func paintAll(s *highlight.Store, runs ...highlight.Run) {
	for _, r := range runs {
		s.Paint(r.Start, r.End, r.Attrs)
	}
}

func requireValid(t *testing.T, s *highlight.Store) {
	t.Helper()
	require.NoError(t, s.Validate())
}

func TestStore_Empty(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, true)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Runs())
	_, _, ok := s.Extent()
	assert.False(t, ok)
	requireValid(t, s)
}

func TestStore_MergeLaw(t *testing.T) {
	t.Parallel()

	t.Run("non-merging keeps both runs", func(t *testing.T) {
		t.Parallel()
		s := highlight.New(nil, false)
		s.Paint(0, 5, attrA)
		s.Paint(5, 10, attrA)

		requireValid(t, s)
		assert.Equal(t, []highlight.Run{run(0, 5, attrA), run(5, 10, attrA)}, s.Runs())
	})

	t.Run("merging fuses", func(t *testing.T) {
		t.Parallel()
		s := highlight.New(nil, true)
		s.Paint(0, 5, attrA)
		s.Paint(5, 10, attrA)

		requireValid(t, s)
		assert.Equal(t, []highlight.Run{run(0, 10, attrA)}, s.Runs())
	})

	t.Run("merging compares by value", func(t *testing.T) {
		t.Parallel()
		s := highlight.New(nil, true)
		s.Paint(0, 5, highlight.NewAttrs("class", "a"))
		s.Paint(5, 10, highlight.NewAttrs("class", "a"))

		assert.Equal(t, 1, s.Len())
	})
}

func TestStore_OverwriteLaw(t *testing.T) {
	t.Parallel()

	for _, merging := range []bool{false, true} {
		s := highlight.New(nil, merging)
		paintAll(s, run(0, 5, attrC), run(5, 15, attrA), run(15, 20, attrD))

		s.Paint(5, 15, attrB)

		requireValid(t, s)
		assert.Equal(t, []highlight.Run{
			run(0, 5, attrC),
			run(5, 15, attrB),
			run(15, 20, attrD),
		}, s.Runs(), "merging=%v", merging)
	}
}

func TestStore_Idempotent(t *testing.T) {
	t.Parallel()

	for _, merging := range []bool{false, true} {
		s := highlight.New(nil, merging)
		paintAll(s, run(0, 10, attrA), run(10, 20, attrB))

		s.Paint(5, 15, attrC)
		once := s.Runs()
		s.Paint(5, 15, attrC)

		requireValid(t, s)
		assert.Equal(t, once, s.Runs(), "merging=%v", merging)
	}
}

func TestStore_OverlapAcrossThreeRuns(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, false)
	paintAll(s, run(0, 10, attrA), run(10, 20, attrB), run(20, 30, attrC))

	s.Paint(5, 25, attrD)

	requireValid(t, s)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []highlight.Run{
		run(0, 5, attrA),
		run(5, 25, attrD),
		run(25, 30, attrC),
	}, s.Runs())
}

func TestStore_PaintInsideRunSplitsIt(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, true)
	s.Paint(0, 30, attrA)
	s.Paint(10, 20, attrB)

	requireValid(t, s)
	assert.Equal(t, []highlight.Run{
		run(0, 10, attrA),
		run(10, 20, attrB),
		run(20, 30, attrA),
	}, s.Runs())

	// Painting the hole back fuses all three.
	s.Paint(10, 20, attrA)
	requireValid(t, s)
	assert.Equal(t, []highlight.Run{run(0, 30, attrA)}, s.Runs())
}

func TestStore_PaintOnExistingBoundaries(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, false)
	paintAll(s, run(0, 10, attrA), run(10, 20, attrB))

	s.Paint(10, 20, attrC)

	requireValid(t, s)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []highlight.Run{run(0, 10, attrA), run(10, 20, attrC)}, s.Runs())
}

func TestStore_MergeEdgesIndependently(t *testing.T) {
	t.Parallel()

	t.Run("left only", func(t *testing.T) {
		t.Parallel()
		s := highlight.New(nil, true)
		paintAll(s, run(0, 10, attrA), run(10, 20, attrB))

		s.Paint(10, 15, attrA)

		requireValid(t, s)
		assert.Equal(t, []highlight.Run{run(0, 15, attrA), run(15, 20, attrB)}, s.Runs())
	})

	t.Run("right only", func(t *testing.T) {
		t.Parallel()
		s := highlight.New(nil, true)
		paintAll(s, run(0, 10, attrA), run(10, 20, attrB))

		s.Paint(5, 10, attrB)

		requireValid(t, s)
		assert.Equal(t, []highlight.Run{run(0, 5, attrA), run(5, 20, attrB)}, s.Runs())
	})

	t.Run("both sides", func(t *testing.T) {
		t.Parallel()
		s := highlight.New(nil, true)
		paintAll(s, run(0, 10, attrA), run(10, 20, attrB), run(20, 30, attrA))

		s.Paint(10, 20, attrA)

		requireValid(t, s)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, []highlight.Run{run(0, 30, attrA)}, s.Runs())
	})
}

func TestStore_ExtendsThroughGaps(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, true)
	s.Paint(10, 15, attrA)
	s.Paint(20, 25, attrA)
	s.Paint(0, 5, attrB)

	requireValid(t, s)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []highlight.Run{
		run(0, 5, attrB),
		run(10, 15, attrA),
		run(20, 25, attrA),
	}, s.Runs())

	start, end, ok := s.Extent()
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 25, end)

	// Filling a gap with equal attributes fuses across it.
	s.Paint(15, 20, attrA)
	requireValid(t, s)
	assert.Equal(t, []highlight.Run{run(0, 5, attrB), run(10, 25, attrA)}, s.Runs())
}

func TestStore_Erase(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, true)
	s.Paint(0, 30, attrA)

	s.Erase(10, 20)
	requireValid(t, s)
	assert.Equal(t, []highlight.Run{run(0, 10, attrA), run(20, 30, attrA)}, s.Runs())
	assert.Equal(t, 3, s.Len())

	s.Erase(20, 30)
	requireValid(t, s)
	assert.Equal(t, []highlight.Run{run(0, 10, attrA)}, s.Runs())
	assert.Equal(t, 1, s.Len())

	s.Erase(50, 60)
	requireValid(t, s)
	assert.Equal(t, 1, s.Len())

	s.Paint(0, 10, nil)
	requireValid(t, s)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ZeroLengthPaintIsNoop(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, true)
	var changes int
	s.OnChange(func(int, int) { changes++ })

	s.Paint(5, 5, attrA)
	assert.Equal(t, 0, s.Len())

	s.Paint(0, 10, attrA)
	s.Paint(5, 5, attrB)
	requireValid(t, s)
	assert.Equal(t, []highlight.Run{run(0, 10, attrA)}, s.Runs())
	assert.Equal(t, 1, changes)
}

func TestStore_ContractViolationsPanic(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, true)

	assert.PanicsWithValue(t, "highlight: paint: negative start offset -1", func() { s.Paint(-1, 3, attrA) })
	assert.PanicsWithValue(t, "highlight: paint: end 3 before start 5", func() { s.Paint(5, 3, attrA) })
	assert.Panics(t, func() { s.Erase(-2, 0) })
	assert.Panics(t, func() { s.Query(5, 3) })
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	s := highlight.New(src, false)
	paintAll(s, run(0, 5, attrA), run(10, 15, attrB))

	var changed []highlight.Run
	s.OnChange(func(start, end int) { changed = append(changed, run(start, end, nil)) })

	s.Clear()

	requireValid(t, s)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, src.live())
	assert.Equal(t, []highlight.Run{run(0, 15, nil)}, changed)

	s.Clear()
	assert.Len(t, changed, 1)
}

func TestStore_ReleasesDroppedAnchors(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	s := highlight.New(src, true)
	paintAll(s, run(0, 10, attrA), run(10, 20, attrB), run(20, 30, attrC), run(40, 50, attrA))
	assert.Equal(t, 6, src.live())

	s.Paint(5, 45, attrD)
	requireValid(t, s)
	assert.Equal(t, 4, src.live())
	assert.Equal(t, s.Len()+1, src.live())
}

func TestStore_ShrinkToFit(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, false)
	for k := range 100 {
		s.Paint(k*2, k*2+1, attrA)
	}
	before := s.Runs()
	boundCap, runCap := s.Capacity()
	require.Greater(t, boundCap, s.Len()+1)
	require.Greater(t, runCap, s.Len())

	s.ShrinkToFit()

	boundCap, runCap = s.Capacity()
	assert.Equal(t, s.Len()+1, boundCap)
	assert.Equal(t, s.Len(), runCap)
	assert.Equal(t, before, s.Runs())

	s.Paint(1, 2, attrB)
	requireValid(t, s)
}

func TestStore_OnChange(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, true)
	var got [][2]int
	s.OnChange(func(start, end int) { got = append(got, [2]int{start, end}) })

	s.Paint(0, 5, attrA)
	s.Erase(1, 2)

	assert.Equal(t, [][2]int{{0, 5}, {1, 2}}, got)
}

func TestStore_FollowsAnchors(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	s := highlight.New(src, true)
	paintAll(s, run(0, 5, attrA), run(10, 15, attrB))

	// Simulate an insertion of three bytes at offset 7.
	src.shift(7, 3)

	requireValid(t, s)
	assert.Equal(t, []highlight.Run{run(0, 5, attrA), run(13, 18, attrB)}, s.Runs())
}

func TestStore_ScaleScenario(t *testing.T) {
	t.Parallel()

	shared := highlight.NewAttrs("class", "shared")
	for _, merging := range []bool{false, true} {
		s := highlight.New(nil, merging)
		for k := range 1000 {
			s.Paint(10*k, 10*k+5, shared)
		}
		requireValid(t, s)

		c := s.Query(math.MinInt, math.MaxInt)
		k := 0
		for c.Next() {
			require.Equal(t, 10*k, c.Start())
			require.Equal(t, 10*k+5, c.End())
			require.Same(t, shared, c.Attributes())
			k++
		}
		assert.Equal(t, 1000, k, "merging=%v", merging)
	}
}

func TestStore_CollapsedRunJoinsEqualNeighbours(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	s := highlight.New(src, true)
	paintAll(s, run(0, 5, attrA), run(5, 7, attrB), run(7, 10, attrA))

	src.remove(5, 7)

	assert.Equal(t, []highlight.Run{run(0, 8, attrA)}, s.Runs())
	assert.Equal(t, []highlight.Run{run(0, 8, attrA)}, highlight.Collect(s.Query(6, 7)))
	assert.Equal(t, []highlight.Run{run(0, 8, attrA)}, highlight.Collect(s.Query(0, 1)))
	assert.Empty(t, highlight.Collect(s.Query(8, 20)))

	// Painting over the collapse drops its boundaries.
	s.Paint(4, 6, attrA)
	requireValid(t, s)
	assert.Equal(t, []highlight.Run{run(0, 8, attrA)}, s.Runs())
}

func TestStore_CollapsedRunKeepsDistinctRunsWithoutMerging(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	s := highlight.New(src, false)
	paintAll(s, run(0, 5, attrA), run(5, 7, attrB), run(7, 10, attrA))

	src.remove(5, 7)

	assert.Equal(t, []highlight.Run{run(0, 5, attrA), run(5, 8, attrA)}, s.Runs())
}

func TestStore_NilAttrsPointerErases(t *testing.T) {
	t.Parallel()

	for _, merging := range []bool{false, true} {
		s := highlight.New(nil, merging)
		paintAll(s, run(0, 10, attrA))

		var none *highlight.Attrs
		s.Paint(3, 6, none)
		requireValid(t, s)
		assert.Equal(t, []highlight.Run{run(0, 3, attrA), run(6, 10, attrA)}, s.Runs(), "merging=%v", merging)

		s.Paint(20, 25, none)
		assert.Equal(t, []highlight.Run{run(0, 3, attrA), run(6, 10, attrA)}, s.Runs())
	}
}
