package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/configloader"
	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/markdown"
)

func newThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List span kinds and their resolved styles",
		Long: `List every span kind the highlighter paints together with the style it
resolves to after configuration files and environment variables are
applied. The ALIASES column shows alternative names accepted as theme keys.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runTheme,
	}
	return cmd
}

func runTheme(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
	theme := highlighter.New(cfg).Theme()

	kinds := markdown.Kinds()
	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		style, _ := theme.Style(kind)
		rows = append(rows, []string{
			string(kind),
			strings.Join(configloader.GetAliasesForKind(kind), ", "),
			describeStyle(style),
			styles.Swatch(style, "Sample"),
		})
	}

	fmt.Fprintln(out, styles.Table([]string{"KIND", "ALIASES", "STYLE", "SAMPLE"}, rows, nil))
	return nil
}

// describeStyle renders a style as "fg=... bg=... bold" or "-" when empty.
func describeStyle(s config.Style) string {
	if s.IsZero() {
		return "-"
	}
	var parts []string
	if s.Foreground != "" {
		parts = append(parts, highlighter.AttrForeground+"="+s.Foreground)
	}
	if s.Background != "" {
		parts = append(parts, highlighter.AttrBackground+"="+s.Background)
	}
	for _, flag := range []struct {
		on   bool
		name string
	}{
		{s.Bold, highlighter.AttrBold},
		{s.Italic, highlighter.AttrItalic},
		{s.Underline, highlighter.AttrUnderline},
		{s.Strikethrough, highlighter.AttrStrikethrough},
	} {
		if flag.on {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, " ")
}
