// Package highlighter keeps the highlight store of a Markdown document in
// step with its text, both from scratch and incrementally after edits.
package highlighter

import (
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/pkg/buffer"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/markdown"
)

// Highlighter lexes documents and paints their highlight stores. It is
// safe for concurrent use on distinct documents.
type Highlighter struct {
	lexer   *markdown.Lexer
	theme   *Theme
	merging bool
}

// New returns a highlighter configured by cfg. A nil cfg uses defaults.
func New(cfg *config.Config) *Highlighter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Highlighter{
		lexer:   markdown.NewLexer(string(cfg.Flavor)),
		theme:   NewTheme(cfg.ResolveTheme()),
		merging: cfg.MergeEnabled(),
	}
}

// Theme returns the theme used for painting.
func (h *Highlighter) Theme() *Theme {
	return h.theme
}

// Merging reports whether document stores fuse equal neighbours.
func (h *Highlighter) Merging() bool {
	return h.merging
}

// Document is a text buffer together with its highlights. The store's
// boundaries are anchors in the buffer, so they follow edits.
//
// A Document must be used from one goroutine at a time.
type Document struct {
	Path   string
	Buffer *buffer.Buffer
	Store  *highlight.Store
}

// Open returns an unhighlighted document holding a copy of content.
func (h *Highlighter) Open(path string, content []byte) *Document {
	buf := buffer.New(content)
	return &Document{
		Path:   path,
		Buffer: buf,
		Store:  highlight.New(buf, h.merging),
	}
}

// Runs returns the highlighted runs intersecting w.
func (d *Document) Runs(w config.Window) []highlight.Run {
	return highlight.Collect(d.Store.Query(w.Start, w.End))
}

// Close drops every highlight and releases its anchors.
func (d *Document) Close() {
	d.Store.Clear()
}

// Stats describes one highlighting pass.
type Stats struct {
	// Edits is the number of edits applied before highlighting.
	Edits int

	// Spans is the number of spans the lexer produced.
	Spans int

	// Painted is the number of runs painted on the document store.
	Painted int

	// Runs is the store's run count afterwards, gaps included.
	Runs int

	// DirtyStart and DirtyEnd bound the repainted byte range. Both are zero
	// when nothing was repainted.
	DirtyStart int
	DirtyEnd   int

	// Duration is the wall time of the pass.
	Duration time.Duration
}

// Highlight clears the document's highlights and paints every span of its
// current content. Spans are painted outermost first so nested spans
// overwrite their containers.
func (h *Highlighter) Highlight(ctx context.Context, doc *Document) (Stats, error) {
	started := time.Now()
	content := doc.Buffer.Bytes()

	spans, err := h.lexer.Lex(ctx, content)
	if err != nil {
		return Stats{}, fmt.Errorf("highlight %s: %w", doc.Path, err)
	}

	doc.Store.Clear()
	h.paintSpans(doc.Store, spans)

	stats := Stats{
		Spans:      len(spans),
		Painted:    len(spans),
		Runs:       doc.Store.Len(),
		DirtyStart: 0,
		DirtyEnd:   len(content),
		Duration:   time.Since(started),
	}
	logging.FromContext(ctx).Debug("highlighted document",
		logging.FieldPath, doc.Path,
		logging.FieldSpans, stats.Spans,
		logging.FieldRuns, stats.Runs,
		logging.FieldDuration, stats.Duration,
	)
	return stats, nil
}

// Rehighlight applies edits to the document and repaints only the range
// whose highlighting changed. Runs outside it keep their anchors. The
// store ends up holding exactly the runs a full Highlight would paint.
//
// If the edits are invalid nothing changes. If lexing fails after the edits
// were applied the document's highlights are cleared.
func (h *Highlighter) Rehighlight(ctx context.Context, doc *Document, edits []buffer.TextEdit) (Stats, error) {
	started := time.Now()
	if err := ctx.Err(); err != nil {
		return Stats{}, fmt.Errorf("rehighlight %s: %w", doc.Path, err)
	}

	sorted, err := buffer.PrepareEdits(edits, doc.Buffer.Len())
	if err != nil {
		return Stats{}, fmt.Errorf("rehighlight %s: %w", doc.Path, err)
	}
	if len(sorted) == 0 {
		return Stats{Runs: doc.Store.Len(), Duration: time.Since(started)}, nil
	}
	if err := doc.Buffer.Apply(sorted); err != nil {
		return Stats{}, fmt.Errorf("rehighlight %s: %w", doc.Path, err)
	}

	content := doc.Buffer.Bytes()
	spans, err := h.lexer.Lex(ctx, content)
	if err != nil {
		doc.Store.Clear()
		return Stats{}, fmt.Errorf("rehighlight %s: %w", doc.Path, err)
	}

	fresh := highlight.New(nil, h.merging)
	h.paintSpans(fresh, spans)

	start, end, changed := doc.Store.SetHighlights(fresh)
	painted := 0
	if changed {
		painted = len(highlight.Collect(fresh.Query(start, end)))
	}

	stats := Stats{
		Edits:      len(sorted),
		Spans:      len(spans),
		Painted:    painted,
		Runs:       doc.Store.Len(),
		DirtyStart: start,
		DirtyEnd:   end,
		Duration:   time.Since(started),
	}
	es, ee, _ := buffer.Span(sorted)
	logging.FromContext(ctx).Debug("rehighlighted document",
		logging.FieldPath, doc.Path,
		logging.FieldEdits, stats.Edits,
		logging.FieldEdited, fmt.Sprintf("%d:%d", es, ee),
		logging.FieldDirty, fmt.Sprintf("%d:%d", start, end),
		logging.FieldPainted, stats.Painted,
		logging.FieldDuration, stats.Duration,
	)
	return stats, nil
}

func (h *Highlighter) paintSpans(store *highlight.Store, spans []markdown.Span) {
	for _, sp := range spans {
		store.Paint(sp.Start, sp.End, h.theme.Attrs(sp))
	}
}
