// Package cli provides the Cobra command structure for gomdhl.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

//nolint:gochecknoglobals // Read-only lookup table.
var colorModes = []string{"auto", "always", "never"}

// NewRootCommand creates the root gomdhl command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdhl",
		Short: "Incremental syntax highlighting for Markdown",
		Long: `gomdhl highlights Markdown files and keeps the highlights current as
the text changes.

Highlights are stored as attributed byte ranges whose boundaries follow
edits, so a change repaints only the blocks it touched. Output can be read
as text, JSON or a per-class summary, and "gomdhl watch" follows files as
they are edited.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			if !slices.Contains(colorModes, color) {
				return usageErrorf("invalid --color %q: must be one of auto, always, never", color)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newThemeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs wraps a positional argument validator so its failures are
// reported as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}
