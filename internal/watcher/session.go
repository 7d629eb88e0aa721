package watcher

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/pkg/buffer"
	"github.com/yaklabco/gomdhl/pkg/fsutil"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
)

// Session keeps one file's document highlighted as the file changes on
// disk. Each refresh turns the difference between the old and new content
// into edits so only the affected blocks are repainted.
//
// A Session must be used from one goroutine.
type Session struct {
	hl   *highlighter.Highlighter
	doc  *highlighter.Document
	info *fsutil.FileInfo
}

// Open reads path and highlights it in full.
func Open(ctx context.Context, hl *highlighter.Highlighter, path string) (*Session, highlighter.Stats, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, highlighter.Stats{}, err
	}

	doc := hl.Open(path, content)
	stats, err := hl.Highlight(ctx, doc)
	if err != nil {
		doc.Close()
		return nil, highlighter.Stats{}, fmt.Errorf("highlight %s: %w", path, err)
	}

	return &Session{hl: hl, doc: doc, info: info}, stats, nil
}

// Document returns the session's document.
func (s *Session) Document() *highlighter.Document {
	return s.doc
}

// Refresh re-reads the file and rehighlights what changed. It reports
// false without touching the document when the content is unchanged.
func (s *Session) Refresh(ctx context.Context) (highlighter.Stats, bool, error) {
	modified, err := fsutil.CheckModified(ctx, s.info)
	if err != nil {
		return highlighter.Stats{}, false, err
	}
	if !modified {
		return highlighter.Stats{}, false, nil
	}

	content, info, err := fsutil.ReadFile(ctx, s.doc.Path)
	if err != nil {
		return highlighter.Stats{}, false, err
	}

	edits := buffer.DiffEdits(s.doc.Buffer.String(), string(content))
	s.info = info
	if len(edits) == 0 {
		return highlighter.Stats{}, false, nil
	}

	stats, err := s.hl.Rehighlight(ctx, s.doc, edits)
	if err != nil {
		return stats, false, fmt.Errorf("rehighlight %s: %w", s.doc.Path, err)
	}

	logging.FromContext(ctx).Debug("refreshed",
		logging.FieldPath, s.doc.Path,
		logging.FieldEdits, len(edits),
		logging.FieldDirty, fmt.Sprintf("%d:%d", stats.DirtyStart, stats.DirtyEnd),
	)
	return stats, true, nil
}

// Close releases the document's highlights.
func (s *Session) Close() {
	s.doc.Close()
}
