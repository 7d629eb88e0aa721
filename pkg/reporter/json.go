package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

// jsonVersion identifies the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path  string    `json:"path"`
	Size  int       `json:"size"`
	Runs  []JSONRun `json:"runs"`
	Error string    `json:"error,omitempty"`
}

// JSONRun represents a single highlighted run.
type JSONRun struct {
	Start       int               `json:"start"`
	End         int               `json:"end"`
	StartLine   int               `json:"startLine"`
	StartColumn int               `json:"startColumn"`
	EndLine     int               `json:"endLine"`
	EndColumn   int               `json:"endColumn"`
	Attrs       map[string]string `json:"attrs"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesHighlighted int            `json:"filesHighlighted"`
	FilesErrored     int            `json:"filesErrored"`
	Bytes            int            `json:"bytes"`
	TotalRuns        int            `json:"totalRuns"`
	ByClass          map[string]int `json:"byClass"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalRuns, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByClass: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path: displayPath(file.Path, r.opts.WorkingDir),
			Size: file.Size,
			Runs: make([]JSONRun, 0, len(file.Highlights)),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		} else {
			output.Summary.FilesHighlighted++
			output.Summary.Bytes += file.Size
		}

		for _, h := range file.Highlights {
			fileResult.Runs = append(fileResult.Runs, JSONRun{
				Start:       h.Start,
				End:         h.End,
				StartLine:   h.StartLine,
				StartColumn: h.StartColumn,
				EndLine:     h.EndLine,
				EndColumn:   h.EndColumn,
				Attrs:       attrMap(h.Attrs),
			})
			output.Summary.TotalRuns++
			output.Summary.ByClass[h.Class()]++
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

// attrMap converts an attribute set to a JSON object. Sets that are not
// key/value Attrs are rendered under a single "value" key.
func attrMap(set highlight.AttributeSet) map[string]string {
	switch a := set.(type) {
	case *highlight.Attrs:
		return a.Map()
	case nil:
		return map[string]string{}
	default:
		return map[string]string{"value": fmt.Sprint(a)}
	}
}
