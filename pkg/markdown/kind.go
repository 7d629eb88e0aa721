package markdown

import "slices"

// Kind classifies a highlighted span.
type Kind string

// Span kinds.
const (
	KindHeading          Kind = "heading"
	KindHeadingMarker    Kind = "heading-marker"
	KindEmphasis         Kind = "emphasis"
	KindStrong           Kind = "strong"
	KindStrikethrough    Kind = "strikethrough"
	KindCodeSpan         Kind = "code-span"
	KindCodeBlock        Kind = "code-block"
	KindCodeFence        Kind = "code-fence"
	KindCodeInfo         Kind = "code-info"
	KindLink             Kind = "link"
	KindLinkURL          Kind = "link-url"
	KindImage            Kind = "image"
	KindAutoLink         Kind = "autolink"
	KindHTML             Kind = "html"
	KindBlockquoteMarker Kind = "blockquote-marker"
	KindListMarker       Kind = "list-marker"
	KindTaskMarker       Kind = "task-marker"
	KindThematicBreak    Kind = "thematic-break"
	KindTableHeader      Kind = "table-header"
	KindTableDelimiter   Kind = "table-delimiter"
)

//nolint:gochecknoglobals // Read-only lookup table.
var allKinds = []Kind{
	KindHeading, KindHeadingMarker,
	KindEmphasis, KindStrong, KindStrikethrough,
	KindCodeSpan, KindCodeBlock, KindCodeFence, KindCodeInfo,
	KindLink, KindLinkURL, KindImage, KindAutoLink,
	KindHTML,
	KindBlockquoteMarker, KindListMarker, KindTaskMarker,
	KindThematicBreak,
	KindTableHeader, KindTableDelimiter,
}

// Kinds returns every span kind in a stable order.
func Kinds() []Kind {
	return slices.Clone(allKinds)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return slices.Contains(allKinds, k)
}

func (k Kind) String() string {
	return string(k)
}

// Span is a highlighted byte range [Start, End) of the source.
type Span struct {
	Start int
	End   int
	Kind  Kind

	// Level is the heading level for headings and their markers.
	Level int

	// Lang is the normalised language of code blocks and their fences.
	Lang string
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}
