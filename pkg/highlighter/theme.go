package highlighter

import (
	"sync"

	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/markdown"
)

// Attribute keys set on every highlight.
const (
	AttrClass         = "class"
	AttrLang          = "lang"
	AttrForeground    = "fg"
	AttrBackground    = "bg"
	AttrBold          = "bold"
	AttrItalic        = "italic"
	AttrUnderline     = "underline"
	AttrStrikethrough = "strikethrough"
)

// Theme maps span kinds to attribute sets. Every span of one kind shares a
// single set, so equal neighbours merge cheaply. Code blocks additionally
// carry their language and get one shared set per language.
//
// A Theme is safe for concurrent use.
type Theme struct {
	styles map[markdown.Kind]config.Style
	kinds  map[markdown.Kind]*highlight.Attrs

	mu    sync.Mutex
	langs map[string]*highlight.Attrs
}

// NewTheme builds a theme from per-kind styles. Unknown kinds are ignored;
// known kinds missing from styles get only a class attribute.
func NewTheme(styles map[string]config.Style) *Theme {
	t := &Theme{
		styles: make(map[markdown.Kind]config.Style),
		kinds:  make(map[markdown.Kind]*highlight.Attrs),
		langs:  make(map[string]*highlight.Attrs),
	}
	for _, kind := range markdown.Kinds() {
		style := styles[string(kind)]
		t.styles[kind] = style
		t.kinds[kind] = styleAttrs(kind, style)
	}
	return t
}

func styleAttrs(kind markdown.Kind, s config.Style) *highlight.Attrs {
	kv := []string{AttrClass, string(kind)}
	if s.Foreground != "" {
		kv = append(kv, AttrForeground, s.Foreground)
	}
	if s.Background != "" {
		kv = append(kv, AttrBackground, s.Background)
	}
	for _, flag := range []struct {
		key string
		on  bool
	}{
		{AttrBold, s.Bold},
		{AttrItalic, s.Italic},
		{AttrUnderline, s.Underline},
		{AttrStrikethrough, s.Strikethrough},
	} {
		if flag.on {
			kv = append(kv, flag.key, "true")
		}
	}
	return highlight.NewAttrs(kv...)
}

// Style returns the style configured for kind.
func (t *Theme) Style(kind markdown.Kind) (config.Style, bool) {
	s, ok := t.styles[kind]
	return s, ok
}

// Attrs returns the attribute set for a span.
//
//nolint:ireturn // Stores accept any AttributeSet.
func (t *Theme) Attrs(sp markdown.Span) highlight.AttributeSet {
	base, ok := t.kinds[sp.Kind]
	if !ok {
		return highlight.NewAttrs(AttrClass, string(sp.Kind))
	}
	if sp.Kind != markdown.KindCodeBlock || sp.Lang == "" {
		return base
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.langs[sp.Lang]
	if !ok {
		a = base.With(AttrLang, sp.Lang)
		t.langs[sp.Lang] = a
	}
	return a
}
