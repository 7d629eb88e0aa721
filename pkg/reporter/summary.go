package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

// SummaryReporter writes a runs-per-class table and aggregate statistics
// instead of individual runs.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || result.Stats.FilesDiscovered == 0 {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(displayPath(file.Path, r.opts.WorkingDir), file.Error))
		}
	}

	if result.Stats.RunsTotal > 0 {
		fmt.Fprint(r.bw, r.styles.FormatClassTable(result.Stats))
	}
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.RunsTotal, nil
}
