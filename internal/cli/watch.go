package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/internal/watcher"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

type watchFlags struct {
	window   string
	flavor   string
	noMerge  bool
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Rehighlight files as they change",
		Long: `Highlight files, then follow them on disk. Each time a file is saved
only the blocks touched by the change are repainted, and the runs inside
the window are printed again.

Stop with Ctrl-C.

Examples:
  gomdhl watch README.md
  gomdhl watch --window 0:400 docs/intro.md`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.window, "window", "", "print only runs intersecting the byte range start:end")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.noMerge, "no-merge", false, "keep every painted span as a distinct run")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watcher.DefaultDebounce,
		"quiet period before a change is handled")

	return cmd
}

// watchView prints the state of watched documents.
type watchView struct {
	out     io.Writer
	styles  *pretty.Styles
	window  config.Window
	workDir string
}

func (v *watchView) show(doc *highlighter.Document) {
	path := relPath(doc.Path, v.workDir)
	hls := runner.Locate(doc, doc.Runs(v.window))
	fmt.Fprintln(v.out, v.styles.FormatFileHeader(path, len(hls)))
	for _, h := range hls {
		fmt.Fprint(v.out, "  "+v.styles.FormatHighlight(path, h, 0))
	}
}

func (v *watchView) showChange(doc *highlighter.Document, stats highlighter.Stats) {
	path := relPath(doc.Path, v.workDir)
	fmt.Fprintln(v.out, v.styles.Dim.Render(fmt.Sprintf(
		"%s changed: %d %s, repainted %d:%d in %s",
		path, stats.Edits, plural(stats.Edits, "edit", "edits"),
		stats.DirtyStart, stats.DirtyEnd, stats.Duration.Round(time.Microsecond),
	)))
	v.show(doc)
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("window") {
		cliCfg.Window = flags.window
	}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("no-merge") {
		cliCfg.Merge = config.Bool(!flags.noMerge)
	}
	if flags.debounce <= 0 {
		return usageErrorf("invalid --debounce %s: must be positive", flags.debounce)
	}

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	window, err := config.ParseWindow(cfg.Window)
	if err != nil {
		return &UsageError{Err: err}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	out := cmd.OutOrStdout()
	view := &watchView{
		out:     out,
		styles:  pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out)),
		window:  window,
		workDir: workDir,
	}

	hl := highlighter.New(cfg)
	sessions := make(map[string]*watcher.Session, len(args))
	defer func() {
		for _, s := range sessions {
			s.Close()
		}
	}()

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", arg, err)
		}
		if _, ok := sessions[abs]; ok {
			continue
		}
		session, _, err := watcher.Open(ctx, hl, abs)
		if err != nil {
			return err
		}
		sessions[abs] = session
		paths = append(paths, abs)
		view.show(session.Document())
	}

	w, err := watcher.New(watcher.Config{Paths: paths, Debounce: flags.debounce})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	changes, errs, err := w.Start()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() {
		if err := w.Stop(); err != nil {
			logger.Warn("stop watcher", logging.FieldError, err)
		}
	}()

	logger.Debug("watching", logging.FieldFiles, paths)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			refresh(ctx, view, sessions[path])
		}
	}
}

// refresh rehighlights one session after its file changed. Failures are
// printed and watching continues, so a file that is briefly missing during
// a save is picked up again on the next change.
func refresh(ctx context.Context, view *watchView, session *watcher.Session) {
	if session == nil {
		return
	}
	doc := session.Document()

	stats, changed, err := session.Refresh(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		fmt.Fprint(view.out, view.styles.FormatFileError(relPath(doc.Path, view.workDir), err))
		return
	case !changed:
		return
	}
	view.showChange(doc, stats)
}

// relPath returns path relative to workDir when it lies beneath it.
func relPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
