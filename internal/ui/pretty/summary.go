package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomdhl/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "42 runs in 3 files (1 failed)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	line := fmt.Sprintf("%d %s in %d %s",
		stats.RunsTotal, plural(stats.RunsTotal, "run", "runs"),
		stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))

	if stats.FilesErrored > 0 {
		return s.Warning.Render(line) + " " + s.Failure.Render(fmt.Sprintf("(%d failed)", stats.FilesErrored)) + "\n"
	}
	return s.Success.Render(line) + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files highlighted: " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString("  Bytes:             " +
		s.SummaryValue.Render(strconv.Itoa(stats.Bytes)) + "\n")
	builder.WriteString("  Runs:              " +
		s.SummaryValue.Render(strconv.Itoa(stats.RunsTotal)) + "\n")
	if stats.Duration > 0 {
		builder.WriteString("  Duration:          " +
			s.SummaryValue.Render(stats.Duration.Round(time.Microsecond).String()) + "\n")
	}

	return builder.String()
}
