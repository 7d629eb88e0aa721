package runner

import (
	"time"

	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
)

// Highlight is one highlighted run of a file with its text position.
// Lines and columns are 1-based; columns count bytes. End is exclusive.
type Highlight struct {
	Start int
	End   int

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	Attrs highlight.AttributeSet
}

// Class returns the "class" attribute of the run, or "" when it has none.
func (h Highlight) Class() string {
	if a, ok := h.Attrs.(*highlight.Attrs); ok {
		v, _ := a.Get(highlighter.AttrClass)
		return v
	}
	return ""
}

// FileOutcome is the result of highlighting one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Size is the file length in bytes.
	Size int

	// Highlights are the runs inside the requested window.
	Highlights []Highlight

	// Stats describes the highlighting pass.
	Stats highlighter.Stats

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully highlighted.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Bytes is the total size of the processed files.
	Bytes int

	// RunsTotal is the number of reported runs across all files.
	RunsTotal int

	// RunsByClass maps a run's class attribute to its count.
	RunsByClass map[string]int

	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per dispatched file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{RunsByClass: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Bytes += outcome.Size
	r.Stats.RunsTotal += len(outcome.Highlights)
	for _, h := range outcome.Highlights {
		r.Stats.RunsByClass[h.Class()]++
	}
}
