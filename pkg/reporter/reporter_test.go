package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/reporter"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

var workDir = filepath.FromSlash("/work")

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: filepath.Join(workDir, "a.md"),
				Size: 9,
				Highlights: []runner.Highlight{
					{
						Start: 0, End: 1, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 2,
						Attrs: highlight.NewAttrs("class", "heading-marker", "fg", "#5f87af"),
					},
					{
						Start: 1, End: 4, StartLine: 1, StartColumn: 2, EndLine: 1, EndColumn: 5,
						Attrs: highlight.NewAttrs("class", "heading", "bold", "true"),
					},
				},
			},
			{
				Path:  filepath.Join(workDir, "b.md"),
				Error: errors.New("permission denied"),
			},
			{
				Path: filepath.Join(workDir, "c.md"),
				Size: 4,
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesProcessed:  2,
			FilesErrored:    1,
			Bytes:           13,
			RunsTotal:       2,
			RunsByClass:     map[string]int{"heading-marker": 1, "heading": 1},
		},
	}
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = workDir

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), n
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]reporter.Format{
		"":        reporter.FormatText,
		"text":    reporter.FormatText,
		"json":    reporter.FormatJSON,
		"summary": reporter.FormatSummary,
	} {
		got, err := reporter.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.True(t, got.IsValid())
	}

	_, err := reporter.ParseFormat("sarif")
	require.Error(t, err)
	assert.False(t, reporter.Format("sarif").IsValid())
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true, Width: -1}, sampleResult())
	assert.Equal(t, 2, n)

	want := strings.Join([]string{
		"a.md (2 runs)",
		"  a.md:1:1-1:2  heading-marker  fg=#5f87af",
		"  a.md:1:2-1:5  heading  bold=true",
		"",
		"b.md: error: permission denied",
		"2 runs in 2 files (1 failed)",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("text output mismatch (-want +got):\n%s", diff)
	}
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, &runner.Result{})
	assert.Zero(t, n)
	assert.Equal(t, "No Markdown files found\n", out)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatJSON}, sampleResult())
	assert.Equal(t, 2, n)

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	want := reporter.JSONOutput{
		Version: "1.0.0",
		Files: []reporter.JSONFileResult{
			{
				Path: "a.md",
				Size: 9,
				Runs: []reporter.JSONRun{
					{
						Start: 0, End: 1, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 2,
						Attrs: map[string]string{"class": "heading-marker", "fg": "#5f87af"},
					},
					{
						Start: 1, End: 4, StartLine: 1, StartColumn: 2, EndLine: 1, EndColumn: 5,
						Attrs: map[string]string{"class": "heading", "bold": "true"},
					},
				},
			},
			{Path: "b.md", Runs: []reporter.JSONRun{}, Error: "permission denied"},
			{Path: "c.md", Size: 4, Runs: []reporter.JSONRun{}},
		},
		Summary: reporter.JSONSummary{
			FilesHighlighted: 2,
			FilesErrored:     1,
			Bytes:            13,
			TotalRuns:        2,
			ByClass:          map[string]int{"heading-marker": 1, "heading": 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON output mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, nil)
	assert.Equal(t, `{"version":"1.0.0","files":[],"summary":{"filesHighlighted":0,"filesErrored":0,"bytes":0,"totalRuns":0,"byClass":{}}}`+"\n", out)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatSummary}, sampleResult())
	assert.Equal(t, 2, n)

	assert.Contains(t, out, "b.md: error: permission denied")
	assert.Contains(t, out, "CLASS")
	assert.Contains(t, out, "heading-marker")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "Files highlighted: 2")
	assert.Contains(t, out, "Runs:              2")
}

func TestSummaryReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.Options{Format: reporter.FormatSummary}, &runner.Result{})
	assert.Zero(t, n)
	assert.Equal(t, "No Markdown files found\n", out)
}
