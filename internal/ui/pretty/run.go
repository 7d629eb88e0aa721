package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

// FormatHighlight formats one run as "path:line:col-line:col  class  attrs".
// Attributes other than class are truncated to fit width when width > 0.
func (s *Styles) FormatHighlight(path string, h runner.Highlight, width int) string {
	location := fmt.Sprintf("%s:%d:%d-%d:%d", path, h.StartLine, h.StartColumn, h.EndLine, h.EndColumn)
	class := h.Class()
	attrs := otherAttrs(h.Attrs)

	if width > 0 {
		used := len(location) + len(class) + 4
		attrs = Truncate(attrs, width-used)
	}

	line := s.Location.Render(location) + "  " + s.Class.Render(class)
	if attrs != "" {
		line += "  " + s.Attrs.Render(attrs)
	}
	return line + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, runCount int) string {
	header := s.FilePath.Render(path)
	if runCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", runCount, plural(runCount, "run", "runs")))
	}
	return header
}

// FormatFileError formats a per-file failure.
func (s *Styles) FormatFileError(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render(fmt.Sprintf("error: %v", err)) + "\n"
}

// otherAttrs renders every attribute but class as "k=v" pairs.
func otherAttrs(set highlight.AttributeSet) string {
	a, ok := set.(*highlight.Attrs)
	if !ok {
		if set == nil {
			return ""
		}
		return fmt.Sprint(set)
	}
	var parts []string
	for _, p := range a.Pairs() {
		if p.Key == "class" {
			continue
		}
		parts = append(parts, p.Key+"="+p.Value)
	}
	return strings.Join(parts, " ")
}

// Truncate shortens str to maxLen bytes, marking the cut with "...".
func Truncate(str string, maxLen int) string {
	const ellipsis = "..."
	switch {
	case len(str) <= maxLen:
		return str
	case maxLen <= len(ellipsis):
		return ""
	default:
		return str[:maxLen-len(ellipsis)] + ellipsis
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
