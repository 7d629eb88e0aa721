package highlight

import (
	"errors"
	"fmt"
	"math"
)

// ErrCorrupt is wrapped by every error Validate returns.
var ErrCorrupt = errors.New("highlight: store invariant violated")

// ChangeFunc is called after a mutation with the half-open range it touched.
type ChangeFunc func(start, end int)

// Run is one attributed interval [Start, End).
type Run struct {
	Start int
	End   int
	Attrs AttributeSet
}

// Store holds non-overlapping attributed runs over a text buffer.
//
// Runs are kept as two parallel arrays: an ascending array of boundary
// anchors and an array holding one AttributeSet per consecutive boundary
// pair. A nil entry in the run array is a gap between highlights; gaps keep
// the arrays aligned and are never returned by Query. The first and last
// runs are never gaps and two gaps are never adjacent.
//
// In merging mode adjacent runs with equal attributes are always fused. In
// non-merging mode every painted range stays a distinct run.
//
// A Store is not safe for concurrent use. Mutations and queries must happen
// on one goroutine; anchor offsets are read at call time and the anchor
// source is responsible for keeping them consistent.
type Store struct {
	source    AnchorSource
	merging   bool
	bounds    boundaries
	runs      gapList[AttributeSet]
	listeners []ChangeFunc

	anchorBuf []Anchor
	attrBuf   []AttributeSet
}

// New returns an empty store. Boundaries are created through source so they
// follow edits to the underlying buffer; a nil source yields fixed offsets.
func New(source AnchorSource, merging bool) *Store {
	if source == nil {
		source = fixedSource{}
	}
	return &Store{source: source, merging: merging}
}

// Merging reports whether adjacent equal runs are fused.
func (s *Store) Merging() bool {
	return s.merging
}

// Len returns the number of runs, gaps included.
func (s *Store) Len() int {
	return s.runs.Len()
}

// Capacity returns the allocated slots of the boundary and run arrays.
func (s *Store) Capacity() (int, int) {
	return s.bounds.Cap(), s.runs.Cap()
}

// Extent returns the offsets of the first and last boundary.
func (s *Store) Extent() (int, int, bool) {
	n := s.bounds.Len()
	if n == 0 {
		return 0, 0, false
	}
	return s.bounds.offset(0), s.bounds.offset(n - 1), true
}

// OnChange registers fn to be called after every mutation.
func (s *Store) OnChange(fn ChangeFunc) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(start, end int) {
	for _, fn := range s.listeners {
		fn(start, end)
	}
}

// Paint makes attrs authoritative for [start, end). Runs partially covered
// by the range are trimmed at its edges; runs fully inside are replaced.
// A nil attrs, including a nil *Attrs, erases the range. Painting an empty
// range does nothing.
//
// Paint panics if start is negative or end is before start.
func (s *Store) Paint(start, end int, attrs AttributeSet) {
	checkRange("paint", start, end)
	if start == end {
		return
	}
	s.paint(start, end, orNil(attrs))
	s.notify(start, end)
}

// Erase removes highlighting from [start, end), trimming runs that cross
// either edge. It has the same preconditions as Paint.
func (s *Store) Erase(start, end int) {
	checkRange("erase", start, end)
	if start == end {
		return
	}
	s.paint(start, end, nil)
	s.notify(start, end)
}

// Clear removes every run and releases all boundary anchors.
func (s *Store) Clear() {
	start, end, ok := s.Extent()
	for i := range s.bounds.Len() {
		release(s.bounds.At(i))
	}
	s.bounds.Clear()
	s.runs.Clear()
	if ok {
		s.notify(start, end)
	}
}

// ShrinkToFit releases spare capacity held by both arrays.
func (s *Store) ShrinkToFit() {
	s.bounds.ShrinkToFit()
	s.runs.ShrinkToFit()
	s.anchorBuf = nil
	s.attrBuf = nil
}

// mark is a boundary-to-be together with the run that starts at it.
type mark struct {
	anchor Anchor
	offset int
	attrs  AttributeSet
	kept   bool
}

func (s *Store) runAt(i int) AttributeSet {
	if i < 0 || i >= s.runs.Len() {
		return nil
	}
	return s.runs.At(i)
}

// fuses reports whether a boundary starting next after prev is redundant.
func (s *Store) fuses(prev, next AttributeSet) bool {
	if prev == nil || next == nil {
		return prev == nil && next == nil
	}
	return s.merging && prev.Equal(next)
}

func (s *Store) paint(start, end int, attrs AttributeSet) {
	lo := s.bounds.lowerBound(start)
	hi := s.bounds.upperBound(end)

	left := s.runAt(lo - 1)
	right := s.runAt(hi - 1)

	var buf [3]mark
	marks := buf[:0]
	from := lo
	var prev AttributeSet
	if lo > 0 {
		from = lo - 1
		marks = append(marks, mark{anchor: s.bounds.At(lo - 1), attrs: left, kept: true})
		prev = left
	}
	if !s.fuses(prev, attrs) {
		marks = append(marks, mark{offset: start, attrs: attrs})
		prev = attrs
	}
	if !s.fuses(prev, right) {
		marks = append(marks, mark{offset: end, attrs: right})
	}

	s.splice(from, hi, marks)
}

// splice replaces boundaries [from, hi) and the runs starting at them with
// marks. The last boundary of the store never starts a run.
func (s *Store) splice(from, hi int, marks []mark) {
	n := s.bounds.Len()

	anchors := s.anchorBuf[:0]
	attrs := s.attrBuf[:0]
	for _, m := range marks {
		a := m.anchor
		if !m.kept {
			a = s.source.CreateAnchor(m.offset)
		}
		anchors = append(anchors, a)
		attrs = append(attrs, m.attrs)
	}
	if hi == n && len(attrs) > 0 {
		attrs = attrs[:len(attrs)-1]
	}

	for i := from; i < hi; i++ {
		if i == from && len(marks) > 0 && marks[0].kept {
			continue
		}
		release(s.bounds.At(i))
	}

	runEnd := max(from, min(hi, n-1))
	s.bounds.Remove(from, hi)
	s.bounds.Insert(from, anchors...)
	s.runs.Remove(from, runEnd)
	s.runs.Insert(from, attrs...)

	clear(anchors)
	clear(attrs)
	s.anchorBuf = anchors[:0]
	s.attrBuf = attrs[:0]
}

// Query returns a cursor over every highlighted run intersecting
// [start, end), in ascending order. Runs are reported whole, not clipped to
// the window. A negative start is treated as 0, so
// Query(math.MinInt, math.MaxInt) covers the whole store.
//
// Runs collapsed to zero width by a deletion in the buffer are skipped. In
// merging mode the equal runs that a collapse leaves touching are reported
// as one.
//
// The cursor captures the runs when Query is called. Later mutations of the
// store do not affect it.
//
// Query panics if end is before start.
func (s *Store) Query(start, end int) *Cursor {
	if end < start {
		panic(fmt.Sprintf("highlight: query: end %d before start %d", end, start))
	}
	start = max(start, 0)

	c := &Cursor{}
	if start >= end || s.runs.Len() == 0 {
		return c
	}

	i := max(s.bounds.upperBound(start)-1, 0)
	if s.merging {
		i = s.fusedFrom(i)
	}
	for ; i < s.runs.Len(); i++ {
		rs := s.bounds.offset(i)
		re := s.bounds.offset(i + 1)
		a := s.runs.At(i)
		if re <= rs {
			continue
		}
		if last := len(c.runs) - 1; s.merging && last >= 0 && a != nil &&
			c.runs[last].End == rs && c.runs[last].Attrs.Equal(a) {
			c.runs[last].End = re
			continue
		}
		if rs >= end {
			break
		}
		if a == nil || re <= start {
			continue
		}
		c.runs = append(c.runs, Run{Start: rs, End: re, Attrs: a})
	}
	return c
}

// fusedFrom returns the first run that reads as one with run i once
// collapsed runs between them are ignored.
func (s *Store) fusedFrom(i int) int {
	a := s.runAt(i)
	if a == nil {
		return i
	}
	for k := i - 1; k >= 0; k-- {
		if s.bounds.offset(k+1) <= s.bounds.offset(k) {
			continue
		}
		if b := s.runs.At(k); b == nil || !b.Equal(a) {
			break
		}
		i = k
	}
	return i
}

// Runs returns every highlighted run in the store.
func (s *Store) Runs() []Run {
	return Collect(s.Query(0, math.MaxInt))
}

// Validate checks the structural invariants of the store and returns an
// error wrapping ErrCorrupt describing the first violation.
func (s *Store) Validate() error {
	n := s.bounds.Len()
	if n == 0 {
		if s.runs.Len() != 0 {
			return fmt.Errorf("%w: %d runs without boundaries", ErrCorrupt, s.runs.Len())
		}
		return nil
	}
	if s.runs.Len() != n-1 {
		return fmt.Errorf("%w: %d runs for %d boundaries", ErrCorrupt, s.runs.Len(), n)
	}
	if n == 1 {
		return fmt.Errorf("%w: lone boundary at %d", ErrCorrupt, s.bounds.offset(0))
	}

	for i := 1; i < n; i++ {
		if prev, cur := s.bounds.offset(i-1), s.bounds.offset(i); cur <= prev {
			return fmt.Errorf("%w: boundary %d at %d not after %d", ErrCorrupt, i, cur, prev)
		}
	}

	if s.runs.At(0) == nil {
		return fmt.Errorf("%w: leading gap", ErrCorrupt)
	}
	if s.runs.At(n-2) == nil {
		return fmt.Errorf("%w: trailing gap", ErrCorrupt)
	}
	for i := 1; i < n-1; i++ {
		prev, cur := s.runs.At(i-1), s.runs.At(i)
		if prev == nil && cur == nil {
			return fmt.Errorf("%w: adjacent gaps at run %d", ErrCorrupt, i)
		}
		if s.merging && prev != nil && cur != nil && prev.Equal(cur) {
			return fmt.Errorf("%w: equal adjacent runs at %d", ErrCorrupt, s.bounds.offset(i))
		}
	}
	return nil
}
