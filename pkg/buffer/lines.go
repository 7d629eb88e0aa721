package buffer

import "sort"

// Line describes one line of content as byte offsets.
type Line struct {
	// Start is the offset of the first byte of the line.
	Start int

	// NewlineStart is the offset of the line terminator ("\n" or "\r\n"),
	// or End when the last line has none.
	NewlineStart int

	// End is the offset just past the line terminator.
	End int
}

// BuildLines splits content into lines, handling LF and CRLF endings.
// Content ending in a newline has a final empty line.
func BuildLines(content []byte) []Line {
	lines := make([]Line, 0, 64)
	start := 0
	for i, c := range content {
		if c != '\n' {
			continue
		}
		nl := i
		if i > start && content[i-1] == '\r' {
			nl = i - 1
		}
		lines = append(lines, Line{Start: start, NewlineStart: nl, End: i + 1})
		start = i + 1
	}
	return append(lines, Line{Start: start, NewlineStart: len(content), End: len(content)})
}

// LineIndex returns the 0-based index of the line containing offset.
// Offsets past the end map to the last line.
func LineIndex(lines []Line, offset int) int {
	i := sort.Search(len(lines), func(i int) bool {
		return lines[i].End > offset
	})
	return min(i, len(lines)-1)
}

// Lines returns the line table of the current content.
func (b *Buffer) Lines() []Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lines == nil {
		b.lines = BuildLines(b.content)
	}
	return b.lines
}

// Position converts a byte offset to 1-based line and column numbers.
// Columns count bytes. Offsets past the end clamp to the end.
func (b *Buffer) Position(offset int) (int, int) {
	lines := b.Lines()
	offset = max(offset, 0)
	offset = min(offset, lines[len(lines)-1].End)
	i := LineIndex(lines, offset)
	return i + 1, offset - lines[i].Start + 1
}
