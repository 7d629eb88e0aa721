package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/gomdhl/pkg/highlight"
)

func TestStore_SetHighlights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		merging   bool
		ours      []highlight.Run
		theirs    []highlight.Run
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{
			name:   "identical",
			ours:   []highlight.Run{run(0, 3, attrA), run(5, 9, attrB)},
			theirs: []highlight.Run{run(0, 3, attrA), run(5, 9, attrB)},
		},
		{
			name:      "changed middle",
			ours:      []highlight.Run{run(0, 3, attrA), run(3, 6, attrB), run(6, 9, attrA)},
			theirs:    []highlight.Run{run(0, 3, attrA), run(3, 6, attrC), run(6, 9, attrA)},
			wantStart: 3, wantEnd: 6, wantOK: true,
		},
		{
			name:      "split run without merging",
			ours:      []highlight.Run{run(0, 6, attrA)},
			theirs:    []highlight.Run{run(0, 3, attrA), run(3, 6, attrA)},
			wantStart: 0, wantEnd: 6, wantOK: true,
		},
		{
			name:      "added run after a gap",
			merging:   true,
			ours:      []highlight.Run{run(0, 2, attrA)},
			theirs:    []highlight.Run{run(0, 2, attrA), run(4, 8, attrB)},
			wantStart: 4, wantEnd: 8, wantOK: true,
		},
		{
			name:      "to empty",
			merging:   true,
			ours:      []highlight.Run{run(2, 4, attrA), run(6, 7, attrB)},
			wantStart: 2, wantEnd: 7, wantOK: true,
		},
		{
			name:      "from empty",
			theirs:    []highlight.Run{run(1, 4, attrD)},
			wantStart: 1, wantEnd: 4, wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newCountingSource()
			s := highlight.New(src, tt.merging)
			paintAll(s, tt.ours...)
			other := highlight.New(nil, tt.merging)
			paintAll(other, tt.theirs...)

			var changes [][2]int
			s.OnChange(func(start, end int) { changes = append(changes, [2]int{start, end}) })

			start, end, ok := s.SetHighlights(other)
			require.Equal(t, tt.wantOK, ok)
			requireValid(t, s)
			assert.Equal(t, other.Runs(), s.Runs())
			if s.Len() > 0 {
				assert.Equal(t, s.Len()+1, src.live())
			}

			if !tt.wantOK {
				assert.Empty(t, changes)
				return
			}
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, [][2]int{{start, end}}, changes)
		})
	}
}

func TestStore_SetHighlightsKeepsSharedAnchors(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	s := highlight.New(src, true)
	paintAll(s, run(0, 3, attrA), run(10, 12, attrB), run(20, 25, attrC))
	before := s.Runs()

	other := highlight.New(nil, true)
	paintAll(other, run(0, 3, attrA), run(10, 12, attrD), run(20, 25, attrC))
	_, _, ok := s.SetHighlights(other)
	require.True(t, ok)

	// Anchors outside the repainted range still follow edits.
	src.shift(15, 2)
	assert.Equal(t, []highlight.Run{before[0], run(10, 12, attrD), run(22, 27, attrC)}, s.Runs())
}

func TestStore_SetHighlightsDropsCollapsedRuns(t *testing.T) {
	t.Parallel()

	for _, merging := range []bool{false, true} {
		src := newCountingSource()
		s := highlight.New(src, merging)
		paintAll(s, run(0, 5, attrA), run(5, 7, attrB), run(7, 10, attrC))
		src.remove(5, 7)
		require.Error(t, s.Validate(), "collapsed boundaries")

		other := highlight.New(nil, merging)
		paintAll(other, run(0, 5, attrA), run(5, 8, attrC))

		_, _, ok := s.SetHighlights(other)
		require.True(t, ok)
		requireValid(t, s)
		assert.Equal(t, other.Runs(), s.Runs(), "merging=%v", merging)
	}
}

func TestStore_SetHighlightsClearsFullyCollapsedStore(t *testing.T) {
	t.Parallel()

	src := newCountingSource()
	s := highlight.New(src, true)
	paintAll(s, run(0, 2, attrA), run(2, 4, attrB))
	src.remove(0, 4)

	_, _, ok := s.SetHighlights(highlight.New(nil, true))
	require.True(t, ok)
	assert.Zero(t, s.Len())
	assert.Zero(t, src.live())
}

func TestStore_SetHighlightsSelfAndNil(t *testing.T) {
	t.Parallel()

	s := highlight.New(nil, false)
	paintAll(s, run(0, 4, attrA))

	_, _, ok := s.SetHighlights(s)
	assert.False(t, ok)
	assert.Equal(t, []highlight.Run{run(0, 4, attrA)}, s.Runs())

	_, _, ok = s.SetHighlights(nil)
	assert.True(t, ok)
	assert.Empty(t, s.Runs())
}

func TestStore_SetHighlightsMatchesModel(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		merging := rapid.Bool().Draw(rt, "merging")
		s := highlight.New(newCountingSource(), merging)
		other := highlight.New(nil, merging)
		m := &model{merging: merging}

		for range rapid.IntRange(0, 20).Draw(rt, "ours") {
			op := drawOp(rt)
			s.Paint(op.start, op.end, op.attrs)
		}
		for range rapid.IntRange(0, 20).Draw(rt, "theirs") {
			op := drawOp(rt)
			other.Paint(op.start, op.end, op.attrs)
			m.paint(op.start, op.end, op.attrs)
		}

		s.SetHighlights(other)
		require.NoError(rt, s.Validate())
		require.Equal(rt, m.runs(), s.Runs())
	})
}
