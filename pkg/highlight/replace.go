package highlight

// SetHighlights makes s hold the same runs as other, keeping its own anchor
// source and merging mode. Runs the two stores share, at the same offsets
// and with equal attributes, are left in place along with their anchors;
// only the range where they differ is repainted, and listeners hear about
// it once. Runs collapsed to zero width in s always count as different, so
// the result is free of them. Collapsed runs of other are not copied.
//
// It returns the repainted range, or ok false when s already matched.
// A nil other clears s.
func (s *Store) SetHighlights(other *Store) (start, end int, ok bool) {
	if other == s {
		return 0, 0, false
	}
	var theirs []Run
	if other != nil {
		theirs = other.entries()
	}
	ours := s.entries()

	p := 0
	for p < len(ours) && p < len(theirs) && sameEntry(ours[p], theirs[p]) {
		p++
	}
	if p == len(ours) && p == len(theirs) {
		return 0, 0, false
	}
	q := 0
	for q < len(ours)-p && q < len(theirs)-p && sameEntry(ours[len(ours)-1-q], theirs[len(theirs)-1-q]) {
		q++
	}

	start, end = entrySpan(ours[p:len(ours)-q], theirs[p:len(theirs)-q])
	for end <= start {
		// Only collapsed runs differ. Widen over equal neighbours until the
		// erase reaches their boundaries.
		switch {
		case p > 0:
			p--
		case q > 0:
			q--
		default:
			s.Clear()
			return start, start, true
		}
		start, end = entrySpan(ours[p:len(ours)-q], theirs[p:len(theirs)-q])
	}

	s.paint(start, end, nil)
	for _, r := range theirs[p : len(theirs)-q] {
		if r.Attrs != nil && r.End > r.Start {
			s.paint(r.Start, r.End, r.Attrs)
		}
	}
	s.notify(start, end)
	return start, end, true
}

// entries returns every run slot, gaps and collapsed runs included.
func (s *Store) entries() []Run {
	out := make([]Run, s.runs.Len())
	for i := range out {
		out[i] = Run{Start: s.bounds.offset(i), End: s.bounds.offset(i + 1), Attrs: s.runs.At(i)}
	}
	return out
}

func sameEntry(a, b Run) bool {
	if a.Start != b.Start || a.End != b.End {
		return false
	}
	return sameAttributes(a.Attrs, b.Attrs)
}

// entrySpan returns the smallest range holding every run of a and b. Gaps
// do not count unless collapsed, since the runs around them bound them.
func entrySpan(a, b []Run) (int, int) {
	start, end := -1, -1
	for _, rs := range [][]Run{a, b} {
		for _, r := range rs {
			if r.Attrs == nil && r.End > r.Start {
				continue
			}
			if start < 0 || r.Start < start {
				start = r.Start
			}
			end = max(end, r.End)
		}
	}
	if start < 0 {
		return 0, 0
	}
	return start, end
}
