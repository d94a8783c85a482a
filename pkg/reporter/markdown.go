package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/neulab/globalbench/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(board core.Leaderboard) error {
	if _, err := fmt.Fprintf(r.Writer, "# %s\n\n", board.BenchmarkName); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "- Benchmark: %s\n- Generated: %s\n", board.BenchmarkID, board.GeneratedAt.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}

	for _, view := range board.Views {
		if _, err := fmt.Fprintf(r.Writer, "\n## %s\n\n", view.Name); err != nil {
			return err
		}
		columns := flattenColumns(view.ColumnNames)
		if _, err := fmt.Fprintf(r.Writer, "| System | %s |\n", strings.Join(escapeAll(columns), " | ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(r.Writer, "|---|%s\n", strings.Repeat("---|", len(columns))); err != nil {
			return err
		}
		for i, name := range view.RowNames {
			cells := make([]string, 0, len(view.Scores[i])+1)
			cells = append(cells, escapePipe(name))
			for _, score := range view.Scores[i] {
				cells = append(cells, fmt.Sprintf("%.4f", score))
			}
			if _, err := fmt.Fprintf(r.Writer, "| %s |\n", strings.Join(cells, " | ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func escapeAll(inputs []string) []string {
	out := make([]string, len(inputs))
	for i, s := range inputs {
		out[i] = escapePipe(s)
	}
	return out
}

func escapePipe(input string) string {
	if input == "" {
		return ""
	}
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if r == '|' {
			out = append(out, '\\', r)
		} else if r == '\n' || r == '\r' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
