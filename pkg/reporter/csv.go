package reporter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/neulab/globalbench/pkg/core"
)

// CSVReporter writes the leaderboard in long form: one row per
// (view, system, column) score.
type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(board core.Leaderboard) error {
	writer := csv.NewWriter(r.Writer)
	header := []string{"view", "system", "column", "score"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, view := range board.Views {
		for i, name := range view.RowNames {
			for j, col := range flattenColumns(view.ColumnNames) {
				record := []string{
					view.Name,
					name,
					col,
					strconv.FormatFloat(view.Scores[i][j], 'f', 4, 64),
				}
				if err := writer.Write(record); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
