package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdhl/pkg/langdetect"
)

// walker collects spans while visiting the goldmark tree in pre-order.
type walker struct {
	src   source
	spans []Span

	// inline is the end of the last inline text seen; autolinks carry no
	// position and are searched for from here.
	inline int

	// block is the start of the line after the last block content seen;
	// thematic breaks carry no position and are searched for from here.
	block int
}

func (w *walker) emit(start, end int, kind Kind) {
	if start < end {
		w.spans = append(w.spans, Span{Start: start, End: end, Kind: kind})
	}
}

func (w *walker) emitSpan(sp Span) {
	if sp.Start < sp.End {
		w.spans = append(w.spans, sp)
	}
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch node := n.(type) {
	case *ast.Heading:
		w.heading(node)
	case *ast.FencedCodeBlock:
		w.fencedCode(node)
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		w.indentedCode(node)
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock:
		w.htmlBlock(node)
		return ast.WalkSkipChildren, nil
	case *ast.Blockquote:
		if !nestedIn[*ast.Blockquote](node) {
			w.blockquote(node)
		}
	case *ast.ListItem:
		w.listItem(node)
	case *ast.ThematicBreak:
		w.thematicBreak()
	case *east.TableHeader:
		w.tableHeader(node)
	case *ast.Paragraph, *ast.TextBlock:
		w.advanceBlock(n)
	case *ast.Text:
		w.inline = max(w.inline, node.Segment.Stop)
	case *ast.Emphasis:
		kind := KindEmphasis
		if node.Level >= 2 {
			kind = KindStrong
		}
		w.inlineSpan(node, kind)
	case *east.Strikethrough:
		w.inlineSpan(node, KindStrikethrough)
	case *ast.CodeSpan:
		if end, ok := w.inlineSpan(node, KindCodeSpan); ok {
			w.inline = max(w.inline, end)
		}
		return ast.WalkSkipChildren, nil
	case *ast.Link:
		w.link(node, KindLink)
	case *ast.Image:
		w.link(node, KindImage)
	case *ast.AutoLink:
		w.autoLink(node)
		return ast.WalkSkipChildren, nil
	case *ast.RawHTML:
		if end, ok := w.inlineSpan(node, KindHTML); ok {
			w.inline = max(w.inline, end)
		}
	}
	return ast.WalkContinue, nil
}

// nestedIn reports whether an ancestor of n has type T.
func nestedIn[T ast.Node](n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(T); ok {
			return true
		}
	}
	return false
}

// advanceBlock moves the block cursor past the lines of n.
func (w *walker) advanceBlock(n ast.Node) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return
	}
	w.block = max(w.block, w.src.nextLine(lines.At(lines.Len()-1).Start))
}

// blockExtent returns the byte range covered by the content of n and its
// descendants.
func (w *walker) blockExtent(n ast.Node) (int, int, bool) {
	start, end := -1, -1
	add := func(s, e int) {
		if start < 0 || s < start {
			start = s
		}
		end = max(end, e)
	}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c.Type() {
		case ast.TypeBlock:
			lines := c.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				add(seg.Start, seg.Stop)
			}
		case ast.TypeInline:
			if t, ok := c.(*ast.Text); ok {
				add(t.Segment.Start, t.Segment.Stop)
			}
		}
		return ast.WalkContinue, nil
	})
	return start, end, start >= 0
}

func (w *walker) heading(n *ast.Heading) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	ls := w.src.lineStart(first.Start)
	le := w.src.lineEnd(last.Start)

	// ATX: a run of '#' precedes the content on its line.
	me := w.src.skipSpacesBack(first.Start, ls)
	ms := me
	for ms > ls && w.src[ms-1] == '#' {
		ms--
	}
	if ms < me {
		end := w.src.trimRight(ms, le)
		w.emitSpan(Span{Start: ms, End: end, Kind: KindHeading, Level: n.Level})
		w.emitSpan(Span{Start: ms, End: me, Kind: KindHeadingMarker, Level: n.Level})

		cs := end
		for cs > last.Stop && w.src[cs-1] == '#' {
			cs--
		}
		if cs < end && cs > me && (w.src[cs-1] == ' ' || w.src[cs-1] == '\t') {
			w.emitSpan(Span{Start: cs, End: end, Kind: KindHeadingMarker, Level: n.Level})
		}
		w.block = max(w.block, w.src.nextLine(ls))
		return
	}

	// Setext: the underline is the line after the content.
	end := w.src.trimRight(first.Start, le)
	ul := w.src.nextLine(last.Start)
	w.block = max(w.block, ul)
	var marker Span
	if ul < len(w.src) {
		ule := w.src.lineEnd(ul)
		us := w.src.skipPrefix(ul, ule)
		if isSetextUnderline(w.src[us:ule]) {
			end = w.src.trimRight(us, ule)
			marker = Span{Start: us, End: end, Kind: KindHeadingMarker, Level: n.Level}
			w.block = max(w.block, w.src.nextLine(ul))
		}
	}
	w.emitSpan(Span{Start: first.Start, End: end, Kind: KindHeading, Level: n.Level})
	w.emitSpan(marker)
}

func (w *walker) fencedCode(n *ast.FencedCodeBlock) {
	lines := n.Lines()
	var open int
	switch {
	case n.Info != nil:
		open = w.src.lineStart(n.Info.Segment.Start)
	case lines.Len() > 0:
		first := w.src.lineStart(lines.At(0).Start)
		if first == 0 {
			return
		}
		open = w.src.lineStart(first - 1)
	default:
		open = w.nextFenceLine()
		if open < 0 {
			return
		}
	}

	fs, fc, ok := w.src.fence(open, 3)
	if !ok {
		return
	}
	fl := w.src.run(fs, len(w.src), fc) - fs
	openEnd := w.src.trimRight(fs, w.src.lineEnd(open))

	var code []byte
	after := w.src.nextLine(open)
	if lines.Len() > 0 {
		for i := range lines.Len() {
			seg := lines.At(i)
			code = append(code, seg.Value(w.src)...)
		}
		after = w.src.nextLine(lines.At(lines.Len() - 1).Start)
	}

	end := openEnd
	if lines.Len() > 0 {
		last := lines.At(lines.Len() - 1)
		end = w.src.trimRight(fs, last.Stop)
	}
	closeStart := -1
	if after < len(w.src) {
		if cs, ok := w.src.closingFence(after, fc, fl); ok {
			closeStart = cs
			end = w.src.trimRight(cs, w.src.lineEnd(after))
			after = w.src.nextLine(after)
		}
	}
	w.block = max(w.block, after)

	lang := langdetect.Normalize(string(n.Language(w.src)))
	if lang == "" {
		lang = langdetect.Detect(code)
	}

	w.emitSpan(Span{Start: fs, End: end, Kind: KindCodeBlock, Lang: lang})
	w.emitSpan(Span{Start: fs, End: openEnd, Kind: KindCodeFence, Lang: lang})
	if n.Info != nil {
		seg := n.Info.Segment
		w.emitSpan(Span{Start: seg.Start, End: w.src.trimRight(seg.Start, seg.Stop), Kind: KindCodeInfo, Lang: lang})
	}
	if closeStart >= 0 {
		w.emitSpan(Span{Start: closeStart, End: end, Kind: KindCodeFence, Lang: lang})
	}
}

// nextFenceLine returns the first line at or after the block cursor that
// opens a fence, or -1.
func (w *walker) nextFenceLine() int {
	for line := w.block; line < len(w.src); line = w.src.nextLine(line) {
		if _, _, ok := w.src.fence(line, 3); ok {
			return line
		}
	}
	return -1
}

func (w *walker) indentedCode(n *ast.CodeBlock) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return
	}
	var code []byte
	for i := range lines.Len() {
		seg := lines.At(i)
		code = append(code, seg.Value(w.src)...)
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	w.block = max(w.block, w.src.nextLine(last.Start))
	w.emitSpan(Span{
		Start: first.Start,
		End:   w.src.trimRight(first.Start, last.Stop),
		Kind:  KindCodeBlock,
		Lang:  langdetect.Detect(code),
	})
}

func (w *walker) htmlBlock(n *ast.HTMLBlock) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return
	}
	start := lines.At(0).Start
	stop := lines.At(lines.Len() - 1).Stop
	if n.HasClosure() {
		stop = max(stop, n.ClosureLine.Stop)
	}
	w.block = max(w.block, w.src.nextLine(max(start, stop-1)))
	w.emit(start, w.src.trimRight(start, stop), KindHTML)
}

func (w *walker) blockquote(n *ast.Blockquote) {
	start, end, ok := w.blockExtent(n)
	if !ok {
		return
	}
	for line := w.src.lineStart(start); line < end; line = w.src.nextLine(line) {
		le := w.src.lineEnd(line)
		for p := line; p < le; p++ {
			c := w.src[p]
			if c == '>' {
				w.emit(p, p+1, KindBlockquoteMarker)
				continue
			}
			if c != ' ' && c != '\t' {
				break
			}
		}
	}
}

func (w *walker) listItem(n *ast.ListItem) {
	start, _, ok := w.blockExtent(n)
	if !ok {
		return
	}
	ls := w.src.lineStart(start)

	p := w.src.skipSpacesBack(start, ls)
	switch {
	case p > ls && (w.src[p-1] == '-' || w.src[p-1] == '+' || w.src[p-1] == '*'):
		w.emit(p-1, p, KindListMarker)
	case p > ls && (w.src[p-1] == '.' || w.src[p-1] == ')'):
		q := p - 1
		for q > ls && isDigit(w.src[q-1]) {
			q--
		}
		if q < p-1 {
			w.emit(q, p, KindListMarker)
		}
	}

	if hasTaskCheckBox(n) && start+3 <= len(w.src) && w.src[start] == '[' && w.src[start+2] == ']' {
		w.emit(start, start+3, KindTaskMarker)
	}
}

func hasTaskCheckBox(item *ast.ListItem) bool {
	block := item.FirstChild()
	if block == nil {
		return false
	}
	_, ok := block.FirstChild().(*east.TaskCheckBox)
	return ok
}

func (w *walker) thematicBreak() {
	for line := w.block; line < len(w.src); line = w.src.nextLine(line) {
		le := w.src.lineEnd(line)
		at := w.src.skipPrefix(line, le)
		if isThematicBreak(w.src[at:le]) {
			w.emit(at, w.src.trimRight(at, le), KindThematicBreak)
			w.block = w.src.nextLine(line)
			return
		}
	}
}

func (w *walker) tableHeader(n *east.TableHeader) {
	start, _, ok := w.blockExtent(n)
	if !ok {
		return
	}
	line := w.src.lineStart(start)
	le := w.src.lineEnd(line)
	at := w.src.skipPrefix(line, le)
	w.emit(at, w.src.trimRight(at, le), KindTableHeader)
	w.block = max(w.block, w.src.nextLine(line))

	delim := w.src.nextLine(line)
	if delim >= len(w.src) {
		return
	}
	de := w.src.lineEnd(delim)
	if isDelimiterRow(w.src[delim:de]) {
		ds := w.src.skipPrefix(delim, de)
		w.emit(ds, w.src.trimRight(ds, de), KindTableDelimiter)
		w.block = max(w.block, w.src.nextLine(delim))
	}
}

// inlineSpan emits a span covering n and its delimiters.
func (w *walker) inlineSpan(n ast.Node, kind Kind) (int, bool) {
	start, end, ok := w.inlineExtent(n)
	if !ok {
		return 0, false
	}
	w.emit(start, end, kind)
	return end, true
}

func (w *walker) childrenExtent(n ast.Node) (int, int, bool) {
	start, end, found := 0, 0, false
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s, e, ok := w.inlineExtent(c)
		if !ok {
			continue
		}
		if !found || s < start {
			start = s
		}
		end = max(end, e)
		found = true
	}
	return start, end, found
}

// inlineExtent returns the source range of an inline node including its
// delimiters.
func (w *walker) inlineExtent(n ast.Node) (int, int, bool) {
	switch node := n.(type) {
	case *ast.Text:
		return node.Segment.Start, node.Segment.Stop, true
	case *ast.RawHTML:
		if node.Segments.Len() == 0 {
			return 0, 0, false
		}
		return node.Segments.At(0).Start, node.Segments.At(node.Segments.Len() - 1).Stop, true
	case *ast.AutoLink:
		return w.autoLinkExtent(node)
	case *ast.Emphasis:
		s, e, ok := w.childrenExtent(node)
		if !ok {
			return 0, 0, false
		}
		for i := 0; i < node.Level && s > 0 && (w.src[s-1] == '*' || w.src[s-1] == '_'); i++ {
			s--
		}
		for i := 0; i < node.Level && e < len(w.src) && (w.src[e] == '*' || w.src[e] == '_'); i++ {
			e++
		}
		return s, e, true
	case *east.Strikethrough:
		s, e, ok := w.childrenExtent(node)
		if !ok {
			return 0, 0, false
		}
		for s > 0 && w.src[s-1] == '~' {
			s--
		}
		e = w.src.run(e, len(w.src), '~')
		return s, e, true
	case *ast.CodeSpan:
		s, e, ok := w.childrenExtent(node)
		if !ok {
			return 0, 0, false
		}
		if s > 1 && w.src[s-1] == ' ' && w.src[s-2] == '`' {
			s--
		}
		for s > 0 && w.src[s-1] == '`' {
			s--
		}
		if e+1 < len(w.src) && w.src[e] == ' ' && w.src[e+1] == '`' {
			e++
		}
		e = w.src.run(e, len(w.src), '`')
		return s, e, true
	case *ast.Link, *ast.Image:
		s, e, _, _, ok := w.linkExtent(node)
		return s, e, ok
	default:
		return w.childrenExtent(n)
	}
}

// linkExtent returns the whole range of a link or image and the range of
// its destination, if inline.
func (w *walker) linkExtent(n ast.Node) (int, int, int, int, bool) {
	ts, te, ok := w.childrenExtent(n)
	if !ok || ts == 0 {
		return 0, 0, 0, 0, false
	}

	start := ts
	if w.src[start-1] == '[' {
		start--
	}
	if _, isImage := n.(*ast.Image); isImage && start > 0 && w.src[start-1] == '!' {
		start--
	}

	end := te
	if te >= len(w.src) || w.src[te] != ']' {
		return start, end, 0, 0, true
	}
	end = te + 1
	if end >= len(w.src) {
		return start, end, 0, 0, true
	}

	switch w.src[end] {
	case '(':
		closeParen := w.matchParen(end)
		if closeParen < 0 {
			return start, end, 0, 0, true
		}
		us := end + 1
		for us < closeParen && isSpace(w.src[us]) {
			us++
		}
		ue := us
		if ue < closeParen && w.src[ue] == '<' {
			if i := bytes.IndexByte(w.src[ue:closeParen], '>'); i >= 0 {
				ue += i + 1
			}
		} else {
			for ue < closeParen && !isSpace(w.src[ue]) {
				ue++
			}
		}
		return start, closeParen + 1, us, ue, true
	case '[':
		if i := bytes.IndexByte(w.src[end:], ']'); i >= 0 {
			return start, end + i + 1, 0, 0, true
		}
	}
	return start, end, 0, 0, true
}

// matchParen returns the index of the ')' balancing the '(' at open.
func (w *walker) matchParen(open int) int {
	depth := 0
	for i := open; i < len(w.src); i++ {
		switch w.src[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		case '\n':
			if i+1 < len(w.src) && w.src[i+1] == '\n' {
				return -1
			}
		}
	}
	return -1
}

func (w *walker) link(n ast.Node, kind Kind) {
	start, end, us, ue, ok := w.linkExtent(n)
	if !ok {
		return
	}
	w.emit(start, end, kind)
	w.emit(us, ue, KindLinkURL)
}

func (w *walker) autoLinkExtent(n *ast.AutoLink) (int, int, bool) {
	label := n.Label(w.src)
	if len(label) == 0 || w.inline > len(w.src) {
		return 0, 0, false
	}
	i := bytes.Index(w.src[w.inline:], label)
	if i < 0 {
		return 0, 0, false
	}
	start := w.inline + i
	end := start + len(label)
	if start > 0 && end < len(w.src) && w.src[start-1] == '<' && w.src[end] == '>' {
		start--
		end++
	}
	return start, end, true
}

func (w *walker) autoLink(n *ast.AutoLink) {
	start, end, ok := w.autoLinkExtent(n)
	if !ok {
		return
	}
	w.emit(start, end, KindAutoLink)
	w.inline = max(w.inline, end)
}
