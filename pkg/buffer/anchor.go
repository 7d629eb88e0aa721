package buffer

// Bias decides which side of inserted text an anchor sitting exactly at
// the insertion point ends up on.
type Bias uint8

const (
	// BiasBackward keeps the anchor before text inserted at its offset.
	BiasBackward Bias = iota
	// BiasForward moves the anchor after text inserted at its offset.
	BiasForward
)

func (b Bias) String() string {
	if b == BiasForward {
		return "forward"
	}
	return "backward"
}

// Anchor is an offset that follows edits made through its Buffer.
type Anchor struct {
	buf    *Buffer
	offset int
	bias   Bias
}

// Offset returns the current offset.
func (a *Anchor) Offset() int {
	a.buf.mu.RLock()
	defer a.buf.mu.RUnlock()
	return a.offset
}

// Bias returns the anchor's bias.
func (a *Anchor) Bias() Bias {
	return a.bias
}

// Release stops the buffer from tracking the anchor. Its offset is frozen
// at its last value. Releasing twice is harmless.
func (a *Anchor) Release() {
	a.buf.mu.Lock()
	defer a.buf.mu.Unlock()
	delete(a.buf.anchors, a)
}

// adjust moves the anchor for a replacement of [start, end) by n bytes.
// An anchor at the end of a non-empty replaced range moves after the new
// text. Anchors at start or inside the range land before or after the new
// text according to their bias.
func (a *Anchor) adjust(start, end, n int) {
	switch {
	case a.offset < start:
	case a.offset > end:
		a.offset += n - (end - start)
	case a.offset == end && end > start:
		a.offset = start + n
	case a.bias == BiasForward:
		a.offset = start + n
	default:
		a.offset = start
	}
}
