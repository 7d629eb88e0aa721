// Package config defines core configuration types for gomdhl.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// Style describes how one span kind is rendered.
type Style struct {
	Foreground    string `mapstructure:"fg" yaml:"fg,omitempty"`
	Background    string `mapstructure:"bg" yaml:"bg,omitempty"`
	Bold          bool   `mapstructure:"bold" yaml:"bold,omitempty"`
	Italic        bool   `mapstructure:"italic" yaml:"italic,omitempty"`
	Underline     bool   `mapstructure:"underline" yaml:"underline,omitempty"`
	Strikethrough bool   `mapstructure:"strikethrough" yaml:"strikethrough,omitempty"`
}

// IsZero reports whether the style sets nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Config is the root configuration structure for gomdhl.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Merge fuses adjacent runs with equal attributes. Nil means true.
	Merge *bool `mapstructure:"merge" yaml:"merge,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format,omitempty"`

	// Jobs specifies the number of parallel workers (0 = auto).
	Jobs int `mapstructure:"jobs" yaml:"jobs,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Window limits reported runs to a byte range, as "start:end".
	Window string `mapstructure:"window" yaml:"window,omitempty"`

	// Theme maps span kinds to styles. Kinds absent here keep their
	// default style.
	Theme map[string]Style `mapstructure:"theme" yaml:"theme,omitempty"`

	// CLI-level options (not persisted to config files).

	// Debug enables debug logging.
	Debug bool `mapstructure:"-" yaml:"-"`

	// Color controls colored output: "auto", "always" or "never".
	Color string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorCommonMark,
		Merge:  Bool(true),
		Format: FormatText,
		Jobs:   0, // 0 means use NumCPU
		Theme:  DefaultTheme(),
		Color:  "auto",
	}
}

// MergeEnabled reports whether run merging is on.
func (c *Config) MergeEnabled() bool {
	return c.Merge == nil || *c.Merge
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
