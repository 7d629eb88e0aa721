package highlight

import (
	"fmt"
	"sort"
)

// Anchor is an offset into a text buffer that keeps tracking the same
// logical position while the buffer is edited elsewhere.
type Anchor interface {
	Offset() int
}

// AnchorSource creates anchors bound to a live buffer.
type AnchorSource interface {
	CreateAnchor(offset int) Anchor
}

// releaser is implemented by anchors whose source wants to know when the
// store no longer needs them.
type releaser interface {
	Release()
}

// Pos is a fixed Anchor. Stores created without a source use it.
type Pos int

// Offset implements Anchor.
func (p Pos) Offset() int { return int(p) }

// fixedSource hands out Pos anchors.
type fixedSource struct{}

func (fixedSource) CreateAnchor(offset int) Anchor { return Pos(offset) }

func release(a Anchor) {
	if r, ok := a.(releaser); ok {
		r.Release()
	}
}

// boundaries is the ordered anchor array delimiting runs.
type boundaries struct {
	gapList[Anchor]
}

// offset returns the live offset of boundary i.
func (b *boundaries) offset(i int) int {
	return b.At(i).Offset()
}

// lowerBound returns the index of the first boundary with offset >= off.
func (b *boundaries) lowerBound(off int) int {
	return sort.Search(b.Len(), func(i int) bool {
		return b.offset(i) >= off
	})
}

// upperBound returns the index of the first boundary with offset > off.
func (b *boundaries) upperBound(off int) int {
	return sort.Search(b.Len(), func(i int) bool {
		return b.offset(i) > off
	})
}

func checkRange(op string, start, end int) {
	if start < 0 {
		panic(fmt.Sprintf("highlight: %s: negative start offset %d", op, start))
	}
	if end < start {
		panic(fmt.Sprintf("highlight: %s: end %d before start %d", op, end, start))
	}
}
