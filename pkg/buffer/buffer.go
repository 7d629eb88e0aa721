// Package buffer is an editable byte buffer whose anchors follow edits.
package buffer

import (
	"bytes"
	"sync"

	"github.com/yaklabco/gomdhl/pkg/highlight"
)

// Buffer holds UTF-8 content and the anchors that track positions in it.
// It is safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	content []byte
	anchors map[*Anchor]struct{}
	lines   []Line
}

// New returns a buffer holding a copy of content.
func New(content []byte) *Buffer {
	return &Buffer{
		content: bytes.Clone(content),
		anchors: make(map[*Anchor]struct{}),
	}
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content)
}

// Bytes returns a copy of the content.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return bytes.Clone(b.content)
}

func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.content)
}

// CreateAnchor returns a backward-biased anchor at offset. It implements
// highlight.AnchorSource. The offset may lie past the end of the content.
func (b *Buffer) CreateAnchor(offset int) highlight.Anchor {
	return b.CreateAnchorWithBias(offset, BiasBackward)
}

// CreateAnchorWithBias returns an anchor at offset with the given bias.
func (b *Buffer) CreateAnchorWithBias(offset int, bias Bias) *Anchor {
	a := &Anchor{buf: b, offset: max(offset, 0), bias: bias}
	b.mu.Lock()
	b.anchors[a] = struct{}{}
	b.mu.Unlock()
	return a
}

// AnchorCount returns the number of anchors being tracked.
func (b *Buffer) AnchorCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.anchors)
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset int, text string) error {
	return b.Apply([]TextEdit{{Start: offset, End: offset, NewText: text}})
}

// Delete removes the bytes [start, end).
func (b *Buffer) Delete(start, end int) error {
	return b.Apply([]TextEdit{{Start: start, End: end}})
}

// Apply performs edits, whose offsets all refer to the current content, as
// one step. Nothing is changed if any edit is invalid or two edits overlap.
func (b *Buffer) Apply(edits []TextEdit) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sorted, err := PrepareEdits(edits, len(b.content))
	if err != nil {
		return err
	}
	if len(sorted) == 0 {
		return nil
	}

	// Back to front so earlier offsets stay valid.
	for i := len(sorted) - 1; i >= 0; i-- {
		b.replace(sorted[i])
	}
	b.lines = nil
	return nil
}

func (b *Buffer) replace(e TextEdit) {
	tail := b.content[e.End:]
	out := make([]byte, 0, len(b.content)+e.Delta())
	out = append(out, b.content[:e.Start]...)
	out = append(out, e.NewText...)
	out = append(out, tail...)
	b.content = out

	for a := range b.anchors {
		a.adjust(e.Start, e.End, len(e.NewText))
	}
}
