package config

import "maps"

//nolint:gochecknoglobals // Read-only default palette.
var defaultTheme = map[string]Style{
	"heading":           {Foreground: "#5fafff", Bold: true},
	"heading-marker":    {Foreground: "#5f87af"},
	"emphasis":          {Italic: true},
	"strong":            {Bold: true},
	"strikethrough":     {Strikethrough: true},
	"code-span":         {Foreground: "#d7875f"},
	"code-block":        {Foreground: "#d7af87"},
	"code-fence":        {Foreground: "#808080"},
	"code-info":         {Foreground: "#87afd7", Italic: true},
	"link":              {Foreground: "#5fd7ff", Underline: true},
	"link-url":          {Foreground: "#8787af"},
	"image":             {Foreground: "#af87ff"},
	"autolink":          {Foreground: "#5fd7ff", Underline: true},
	"html":              {Foreground: "#af8787"},
	"blockquote-marker": {Foreground: "#87af87"},
	"list-marker":       {Foreground: "#d7af5f", Bold: true},
	"task-marker":       {Foreground: "#d7af5f"},
	"thematic-break":    {Foreground: "#808080"},
	"table-header":      {Bold: true},
	"table-delimiter":   {Foreground: "#808080"},
}

// DefaultTheme returns a fresh copy of the built-in theme.
func DefaultTheme() map[string]Style {
	return maps.Clone(defaultTheme)
}

// ResolveTheme returns the default theme overlaid with c.Theme.
func (c *Config) ResolveTheme() map[string]Style {
	theme := DefaultTheme()
	if c != nil {
		maps.Copy(theme, c.Theme)
	}
	return theme
}
