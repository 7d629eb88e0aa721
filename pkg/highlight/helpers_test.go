package highlight_test

import "github.com/yaklabco/gomdhl/pkg/highlight"

// countingSource hands out movable anchors and tracks which are released.
type countingSource struct {
	anchors map[*movableAnchor]struct{}
}

type movableAnchor struct {
	src *countingSource
	off int
}

func (a *movableAnchor) Offset() int { return a.off }

func (a *movableAnchor) Release() { delete(a.src.anchors, a) }

func newCountingSource() *countingSource {
	return &countingSource{anchors: make(map[*movableAnchor]struct{})}
}

func (s *countingSource) CreateAnchor(offset int) highlight.Anchor {
	a := &movableAnchor{src: s, off: offset}
	s.anchors[a] = struct{}{}
	return a
}

func (s *countingSource) live() int { return len(s.anchors) }

// shift moves every anchor at or after at by n bytes.
func (s *countingSource) shift(at, n int) {
	for a := range s.anchors {
		if a.off >= at {
			a.off += n
		}
	}
}

// remove deletes the bytes [start, end): anchors inside collapse to start
// and anchors after it move back.
func (s *countingSource) remove(start, end int) {
	for a := range s.anchors {
		switch {
		case a.off >= end:
			a.off -= end - start
		case a.off > start:
			a.off = start
		}
	}
}
