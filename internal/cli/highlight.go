package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/reporter"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

type highlightFlags struct {
	format    string
	flavor    string
	window    string
	merge     bool
	noMerge   bool
	jobs      int
	ignore    []string
	compact   bool
	width     int
	noSummary bool
	follow    bool
}

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:     "highlight [paths...]",
		Aliases: []string{"hl"},
		Short:   "Highlight Markdown files",
		Long:    highlightLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args, flags)
		},
	}

	addHighlightFlags(cmd, flags)

	return cmd
}

const highlightLongDescription = `Highlight Markdown files and report the attributed runs.

By default, highlights every .md, .markdown, .mdown and .mkd file under the
current directory. Specify paths to highlight specific files or directories.

Examples:
  gomdhl highlight                      # Highlight current directory
  gomdhl highlight README.md            # Highlight a single file
  gomdhl highlight --window 0:200 a.md  # Only runs touching bytes 0-200
  gomdhl highlight --format json docs/  # Output as JSON
  gomdhl highlight --no-merge a.md      # Keep every painted span distinct`

func addHighlightFlags(cmd *cobra.Command, flags *highlightFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, summary")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.window, "window", "", "report only runs intersecting the byte range start:end")
	cmd.Flags().BoolVar(&flags.merge, "merge", true, "fuse adjacent runs with equal attributes")
	cmd.Flags().BoolVar(&flags.noMerge, "no-merge", false, "keep every painted span as a distinct run")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON output")
	cmd.Flags().IntVar(&flags.width, "width", 0, "truncate text lines to this width (0 = terminal, -1 = never)")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "descend into symlinked directories")
}

// cliConfig builds the configuration layer for explicitly set flags only,
// so unset flags never mask file or environment values.
func (f *highlightFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("window") {
		cfg.Window = f.window
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	switch {
	case changed("no-merge"):
		cfg.Merge = config.Bool(!f.noMerge)
	case changed("merge"):
		cfg.Merge = config.Bool(f.merge)
	}
	return cfg
}

func runHighlight(cmd *cobra.Command, args []string, flags *highlightFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	if cmd.Flags().Changed("merge") && cmd.Flags().Changed("no-merge") {
		return usageErrorf("--merge and --no-merge cannot be used together")
	}

	loaded, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := loaded.Config

	window, err := config.ParseWindow(cfg.Window)
	if err != nil {
		return &UsageError{Err: err}
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return &UsageError{Err: err}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	logger.Debug("configuration loaded",
		"flavor", cfg.Flavor,
		"merge", cfg.MergeEnabled(),
		"jobs", cfg.Jobs,
		"window", window,
	)

	hlRunner := runner.New(highlighter.New(cfg))
	result, err := hlRunner.Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		Ignore:         cfg.Ignore,
		FollowSymlinks: flags.follow,
		Jobs:           cfg.Jobs,
		Window:         window,
	})
	if err != nil {
		return fmt.Errorf("highlight run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       cfg.Color,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		Width:       flags.width,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrFilesFailed
	}
	return nil
}
