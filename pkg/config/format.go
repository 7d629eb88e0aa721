package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OutputFormat specifies the output format for highlight runs.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// ErrInvalidWindow is returned for malformed window strings.
var ErrInvalidWindow = errors.New("invalid window")

// Window is a half-open byte range [Start, End).
type Window struct {
	Start int
	End   int
}

// FullWindow covers every offset.
func FullWindow() Window {
	return Window{Start: 0, End: math.MaxInt}
}

// IsFull reports whether w covers every offset.
func (w Window) IsFull() bool {
	return w.Start <= 0 && w.End == math.MaxInt
}

func (w Window) String() string {
	if w.End == math.MaxInt {
		return strconv.Itoa(w.Start) + ":"
	}
	return strconv.Itoa(w.Start) + ":" + strconv.Itoa(w.End)
}

// ParseWindow parses "start:end". Either side may be omitted: ":20" starts
// at 0 and "10:" runs to the end. An empty string is the full window.
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FullWindow(), nil
	}

	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return Window{}, fmt.Errorf("%w %q: expected start:end", ErrInvalidWindow, s)
	}

	w := FullWindow()
	if lo != "" {
		n, err := strconv.Atoi(lo)
		if err != nil || n < 0 {
			return Window{}, fmt.Errorf("%w %q: bad start", ErrInvalidWindow, s)
		}
		w.Start = n
	}
	if hi != "" {
		n, err := strconv.Atoi(hi)
		if err != nil || n < 0 {
			return Window{}, fmt.Errorf("%w %q: bad end", ErrInvalidWindow, s)
		}
		w.End = n
	}
	if w.End < w.Start {
		return Window{}, fmt.Errorf("%w %q: end before start", ErrInvalidWindow, s)
	}
	return w, nil
}
