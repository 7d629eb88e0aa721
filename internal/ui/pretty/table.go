package pretty

import (
	"cmp"
	"maps"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/gomdhl/pkg/runner"
)

// noClass labels runs without a class attribute.
const noClass = "(none)"

// ClassCount is one row of the runs-per-class table.
type ClassCount struct {
	Class string
	Runs  int
}

// ClassCounts orders stats.RunsByClass by descending count, then class.
func ClassCounts(stats runner.Stats) []ClassCount {
	counts := make([]ClassCount, 0, len(stats.RunsByClass))
	for _, class := range slices.Sorted(maps.Keys(stats.RunsByClass)) {
		name := class
		if name == "" {
			name = noClass
		}
		counts = append(counts, ClassCount{Class: name, Runs: stats.RunsByClass[class]})
	}
	slices.SortStableFunc(counts, func(a, b ClassCount) int {
		return cmp.Compare(b.Runs, a.Runs)
	})
	return counts
}

// FormatClassTable renders the number of runs per class as a table with a
// total row.
func (s *Styles) FormatClassTable(stats runner.Stats) string {
	counts := ClassCounts(stats)
	rows := make([][]string, 0, len(counts)+1)
	for _, c := range counts {
		rows = append(rows, []string{c.Class, strconv.Itoa(c.Runs)})
	}
	rows = append(rows, []string{"total", strconv.Itoa(stats.RunsTotal)})
	total := len(rows) - 1

	return s.Table([]string{"CLASS", "RUNS"}, rows, func(row, _ int) lipgloss.Style {
		if row == total {
			return s.TableCell.Inherit(s.Bold)
		}
		return s.TableCell
	}) + "\n"
}

// Table renders rows under headers with the table border style. cell picks
// the style of a body cell; nil uses TableCell.
func (s *Styles) Table(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) string {
	if cell == nil {
		cell = func(int, int) lipgloss.Style { return s.TableCell }
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return cell(row, col)
		}).
		String()
}
