package highlight

import "fmt"

type cursorState uint8

const (
	notStarted cursorState = iota
	positioned
	exhausted
)

func (s cursorState) String() string {
	switch s {
	case notStarted:
		return "not started"
	case positioned:
		return "positioned"
	case exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("cursorState(%d)", uint8(s))
	}
}

// Cursor is a forward-only, single-pass iterator over the runs a Query
// matched. It starts before the first run; call Next to advance.
//
//	c := store.Query(lo, hi)
//	for c.Next() {
//		paint(c.Start(), c.End(), c.Attributes())
//	}
//
// Start, End and Attributes panic unless the last call to Next returned true.
type Cursor struct {
	runs  []Run
	pos   int
	state cursorState
}

// Next advances to the next run and reports whether there is one. Once it
// returns false the cursor is exhausted and drops its snapshot; further
// calls keep returning false.
func (c *Cursor) Next() bool {
	switch c.state {
	case exhausted:
		return false
	case notStarted:
		c.pos = 0
	default:
		c.pos++
	}
	if c.pos >= len(c.runs) {
		c.state = exhausted
		c.runs = nil
		return false
	}
	c.state = positioned
	return true
}

func (c *Cursor) current(name string) Run {
	if c.state != positioned {
		panic(fmt.Sprintf("highlight: cursor %s called while %s", name, c.state))
	}
	return c.runs[c.pos]
}

// Start returns the start offset of the current run.
func (c *Cursor) Start() int { return c.current("Start").Start }

// End returns the end offset of the current run.
func (c *Cursor) End() int { return c.current("End").End }

// Attributes returns the attributes of the current run.
func (c *Cursor) Attributes() AttributeSet { return c.current("Attributes").Attrs }

// Run returns the current run.
func (c *Cursor) Run() Run { return c.current("Run") }

// Collect drains c and returns the remaining runs.
func Collect(c *Cursor) []Run {
	var out []Run
	for c.Next() {
		out = append(out, c.Run())
	}
	return out
}
