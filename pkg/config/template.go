package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every theme entry instead of a commented example.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Fuse adjacent runs with equal attributes
# merge: true

# Output format: text, json, or summary
# format: text

# Number of parallel workers (0 = auto)
# jobs: 0

# Only report runs intersecting this byte range (start:end)
# window: "0:4096"

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Per-kind styles; unlisted kinds keep their defaults
# theme:
#   heading:
#     fg: "#5fafff"
#     bold: true
#   code-span:
#     fg: "#d7875f"
`)
	return buf.Bytes()
}

// generateFullTemplate writes every setting with its default value.
func generateFullTemplate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every setting with its default value.

flavor: commonmark
merge: true
format: text
jobs: 0
ignore:
  - "vendor/**"
  - "node_modules/**"

# Styles per span kind. Keys: fg, bg, bold, italic, underline, strikethrough.
`)

	theme := DefaultTheme()
	kinds := slices.Sorted(maps.Keys(theme))

	buf.WriteString("theme:\n")
	for _, kind := range kinds {
		node, err := yamlStyle(theme[kind])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "  %s: %s\n", kind, node)
	}

	return buf.Bytes(), nil
}

// yamlStyle renders a style as a YAML flow mapping.
func yamlStyle(s Style) (string, error) {
	var node yaml.Node
	if err := node.Encode(s); err != nil {
		return "", fmt.Errorf("encode style: %w", err)
	}
	node.Style = yaml.FlowStyle

	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("marshal style: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// templateToJSON renders the full default configuration as JSON.
func templateToJSON() ([]byte, error) {
	theme := make(map[string]map[string]any, len(defaultTheme))
	for kind, s := range defaultTheme {
		theme[kind] = styleMap(s)
	}

	cfg := map[string]any{
		"flavor": string(FlavorCommonMark),
		"merge":  true,
		"format": string(FormatText),
		"jobs":   0,
		"ignore": []string{"vendor/**", "node_modules/**"},
		"theme":  theme,
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

func styleMap(s Style) map[string]any {
	m := make(map[string]any)
	if s.Foreground != "" {
		m["fg"] = s.Foreground
	}
	if s.Background != "" {
		m["bg"] = s.Background
	}
	if s.Bold {
		m["bold"] = true
	}
	if s.Italic {
		m["italic"] = true
	}
	if s.Underline {
		m["underline"] = true
	}
	if s.Strikethrough {
		m["strikethrough"] = true
	}
	return m
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdhl configuration
# See: https://github.com/yaklabco/gomdhl`
}
