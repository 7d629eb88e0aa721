package markdown

import "bytes"

// source is the document being lexed with line-oriented helpers. All
// offsets are byte offsets into it.
type source []byte

// lineStart returns the offset of the first byte of the line holding off.
func (s source) lineStart(off int) int {
	off = min(off, len(s))
	return bytes.LastIndexByte(s[:off], '\n') + 1
}

// lineEnd returns the offset of the terminator of the line holding off,
// excluding any carriage return, or len(s) for the last line.
func (s source) lineEnd(off int) int {
	i := bytes.IndexByte(s[off:], '\n')
	if i < 0 {
		return len(s)
	}
	end := off + i
	if end > off && s[end-1] == '\r' {
		end--
	}
	return end
}

// nextLine returns the start of the line after the one holding off.
func (s source) nextLine(off int) int {
	i := bytes.IndexByte(s[off:], '\n')
	if i < 0 {
		return len(s)
	}
	return off + i + 1
}

// trimRight moves end left past spaces, tabs and line terminators.
func (s source) trimRight(start, end int) int {
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return end
}

// skipPrefix skips indentation and blockquote markers from off up to end.
func (s source) skipPrefix(off, end int) int {
	for off < end && (s[off] == ' ' || s[off] == '\t' || s[off] == '>') {
		off++
	}
	return off
}

// skipSpacesBack moves off left past spaces and tabs, not before floor.
func (s source) skipSpacesBack(off, floor int) int {
	for off > floor && (s[off-1] == ' ' || s[off-1] == '\t') {
		off--
	}
	return off
}

// run returns the end of the run of c starting at off, bounded by end.
func (s source) run(off, end int, c byte) int {
	for off < end && s[off] == c {
		off++
	}
	return off
}

// fence finds a code fence of at least minLen fence characters on the
// line starting at line. It returns the fence start and character.
func (s source) fence(line int, minLen int) (int, byte, bool) {
	end := s.lineEnd(line)
	for i := line; i < end; i++ {
		c := s[i]
		if c != '`' && c != '~' {
			if !isContainerPrefix(c) {
				return 0, 0, false
			}
			continue
		}
		if s.run(i, end, c)-i >= minLen {
			return i, c, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}

// closingFence reports whether the line starting at line closes a fence
// of n characters c, returning where the fence starts.
func (s source) closingFence(line int, c byte, n int) (int, bool) {
	end := s.lineEnd(line)
	at := s.skipPrefix(line, end)
	stop := s.run(at, end, c)
	if stop-at < n || s.trimRight(stop, end) != stop {
		return 0, false
	}
	return at, true
}

// isThematicBreak reports whether line, with its container prefix already
// removed, is three or more of one of -*_ separated only by blanks.
func isThematicBreak(line []byte) bool {
	var marker byte
	count := 0
	for _, c := range line {
		switch {
		case c == ' ' || c == '\t' || c == '\r':
		case marker == 0 && (c == '-' || c == '*' || c == '_'):
			marker = c
			count++
		case c == marker:
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// isSetextUnderline reports whether line is a run of = or - with optional
// trailing blanks.
func isSetextUnderline(line []byte) bool {
	line = bytes.TrimRight(line, " \t\r")
	if len(line) == 0 || (line[0] != '=' && line[0] != '-') {
		return false
	}
	return len(bytes.Trim(line, string(line[0]))) == 0
}

// isDelimiterRow reports whether line looks like a table delimiter row.
func isDelimiterRow(line []byte) bool {
	line = bytes.TrimSpace(line)
	if !bytes.Contains(line, []byte("-")) {
		return false
	}
	for _, c := range line {
		if c != '|' && c != '-' && c != ':' && c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

// isContainerPrefix reports whether c may precede a fence on its line:
// indentation, blockquote markers and list markers.
func isContainerPrefix(c byte) bool {
	switch c {
	case ' ', '\t', '>', '-', '+', '*', '.', ')':
		return true
	}
	return isDigit(c)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
