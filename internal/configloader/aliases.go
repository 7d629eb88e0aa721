package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/gomdhl/pkg/markdown"
)

// kindAliases maps familiar element names to span kinds so theme files can
// say "h1" or "bold" instead of "heading" or "strong".
//
//nolint:gochecknoglobals // Read-only lookup table.
var kindAliases = map[string]markdown.Kind{
	// Headings
	"h1":     markdown.KindHeading,
	"h2":     markdown.KindHeading,
	"h3":     markdown.KindHeading,
	"h4":     markdown.KindHeading,
	"h5":     markdown.KindHeading,
	"h6":     markdown.KindHeading,
	"title":  markdown.KindHeading,
	"header": markdown.KindHeading,

	// Emphasis
	"em":     markdown.KindEmphasis,
	"italic": markdown.KindEmphasis,
	"bold":   markdown.KindStrong,
	"del":    markdown.KindStrikethrough,
	"strike": markdown.KindStrikethrough,

	// Code
	"code":     markdown.KindCodeSpan,
	"inline":   markdown.KindCodeSpan,
	"pre":      markdown.KindCodeBlock,
	"fence":    markdown.KindCodeFence,
	"language": markdown.KindCodeInfo,
	"info":     markdown.KindCodeInfo,

	// Links
	"url":  markdown.KindLinkURL,
	"href": markdown.KindLinkURL,
	"img":  markdown.KindImage,

	// Blocks
	"blockquote": markdown.KindBlockquoteMarker,
	"quote":      markdown.KindBlockquoteMarker,
	"bullet":     markdown.KindListMarker,
	"list":       markdown.KindListMarker,
	"checkbox":   markdown.KindTaskMarker,
	"task":       markdown.KindTaskMarker,
	"hr":         markdown.KindThematicBreak,
	"rule":       markdown.KindThematicBreak,
	"th":         markdown.KindTableHeader,
}

// NormalizeKind converts a theme key to its canonical kind name.
// Keys are matched case-insensitively with "_" treated as "-".
// Returns empty string if the key is not a known kind or alias.
func NormalizeKind(key string) string {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
	if markdown.Kind(k).Valid() {
		return k
	}
	if kind, ok := kindAliases[k]; ok {
		return string(kind)
	}
	return ""
}

// GetAliasesForKind returns every alias of kind, sorted.
func GetAliasesForKind(kind markdown.Kind) []string {
	var aliases []string
	for alias, k := range kindAliases {
		if k == kind {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return aliases
}
