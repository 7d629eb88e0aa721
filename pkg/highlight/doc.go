// Package highlight stores non-overlapping, attribute-tagged intervals over
// a mutable text buffer and answers windowed range queries against them.
//
// A producer such as a lexer paints ranges in buffer order:
//
//	store := highlight.New(buf, true)
//	store.Paint(0, 5, keyword)
//	store.Paint(6, 11, ident)
//
// A consumer drains a cursor for the visible window:
//
//	c := store.Query(viewStart, viewEnd)
//	for c.Next() {
//		draw(c.Start(), c.End(), c.Attributes())
//	}
//
// Boundaries are anchors created by the bound AnchorSource, so previously
// painted runs follow insertions and deletions in the buffer without being
// repainted.
package highlight
