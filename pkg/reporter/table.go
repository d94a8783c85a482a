package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/neulab/globalbench/pkg/core"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(board core.Leaderboard) error {
	fmt.Fprintf(r.Writer, "Benchmark: %s (%s)\n", board.BenchmarkName, board.BenchmarkID)
	for _, view := range board.Views {
		fmt.Fprintf(r.Writer, "\n%s\n", view.Name)
		table := tablewriter.NewWriter(r.Writer)
		table.Header(append([]string{"System"}, flattenColumns(view.ColumnNames)...))
		for i, name := range view.RowNames {
			row := []string{name}
			for _, score := range view.Scores[i] {
				row = append(row, fmt.Sprintf("%.4f", score))
			}
			table.Append(row)
		}
		table.Render()
	}
	return nil
}

// flattenColumns rewrites the multi-line pivot column labels for one-line
// table headers.
func flattenColumns(columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		parts := strings.Split(col, "\n")
		if len(parts) > 1 {
			out[i] = strings.Join(parts[1:], " ")
		} else {
			out[i] = col
		}
	}
	return out
}
