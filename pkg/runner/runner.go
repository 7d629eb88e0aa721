package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/fsutil"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
)

// Runner highlights files on a worker pool. Every file gets its own
// document, so workers share nothing but the highlighter's theme.
type Runner struct {
	Highlighter *highlighter.Highlighter
}

// New creates a Runner using hl.
func New(hl *highlighter.Highlighter) *Runner {
	return &Runner{Highlighter: hl}
}

type job struct {
	index int
	path  string
}

type outcome struct {
	index int
	FileOutcome
}

// Run discovers files under opts.Paths and highlights them concurrently.
// Outcomes are reported in discovery order. When ctx is cancelled no more
// files are dispatched; the partial result is returned with the context
// error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan job)
	outCh := make(chan outcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for i, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- job{index: i, path: path}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	slots := make([]*FileOutcome, len(files))
	for out := range outCh {
		slots[out.index] = &out.FileOutcome
	}

	for _, slot := range slots {
		if slot != nil {
			result.accumulate(*slot)
		}
	}
	result.Stats.Duration = time.Since(started)

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldRunsTotal, result.Stats.RunsTotal,
		logging.FieldDuration, result.Stats.Duration,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan job, outCh chan<- outcome, opts Options) {
	for j := range workCh {
		if ctx.Err() != nil {
			return
		}

		out := outcome{index: j.index, FileOutcome: r.HighlightFile(ctx, j.path, opts.Window)}

		select {
		case <-ctx.Done():
			return
		case outCh <- out:
		}
	}
}

// HighlightFile reads and highlights one file, reporting the runs that
// intersect window.
func (r *Runner) HighlightFile(ctx context.Context, path string, window config.Window) FileOutcome {
	fo := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		fo.Error = err
		return fo
	}
	fo.Size = len(content)

	doc := r.Highlighter.Open(path, content)
	defer doc.Close()

	stats, err := r.Highlighter.Highlight(ctx, doc)
	if err != nil {
		fo.Error = fmt.Errorf("%s: %w", path, err)
		return fo
	}
	fo.Stats = stats
	fo.Highlights = Locate(doc, doc.Runs(window))
	return fo
}

// Locate attaches line and column positions to runs of doc.
func Locate(doc *highlighter.Document, runs []highlight.Run) []Highlight {
	out := make([]Highlight, len(runs))
	for i, run := range runs {
		sl, sc := doc.Buffer.Position(run.Start)
		el, ec := doc.Buffer.Position(run.End)
		out[i] = Highlight{
			Start:       run.Start,
			End:         run.End,
			StartLine:   sl,
			StartColumn: sc,
			EndLine:     el,
			EndColumn:   ec,
			Attrs:       run.Attrs,
		}
	}
	return out
}
