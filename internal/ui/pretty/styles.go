// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gomdhl/pkg/config"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	colorEnabled bool

	// Run components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Class    lipgloss.Style
	Attrs    lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
	TableCell   lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// ColorEnabled reports whether the styles emit ANSI sequences.
func (s *Styles) ColorEnabled() bool {
	return s.colorEnabled
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		colorEnabled: true,

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Class:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Attrs:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Padding(0, 1),
		TableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableCell:   lipgloss.NewStyle().Padding(0, 1),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	padded := lipgloss.NewStyle().Padding(0, 1)
	return &Styles{
		FilePath:     plain,
		Location:     plain,
		Class:        plain,
		Attrs:        plain,
		Error:        plain,
		Warning:      plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		TableHeader:  padded,
		TableBorder:  plain,
		TableCell:    padded,
		Dim:          plain,
		Bold:         plain,
	}
}

// Swatch renders text the way a theme style would paint it. Without color
// the text is returned unchanged.
func (s *Styles) Swatch(style config.Style, text string) string {
	if !s.colorEnabled {
		return text
	}
	ls := lipgloss.NewStyle().
		Bold(style.Bold).
		Italic(style.Italic).
		Underline(style.Underline).
		Strikethrough(style.Strikethrough)
	if style.Foreground != "" {
		ls = ls.Foreground(lipgloss.Color(style.Foreground))
	}
	if style.Background != "" {
		ls = ls.Background(lipgloss.Color(style.Background))
	}
	return ls.Render(text)
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
