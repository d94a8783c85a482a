package reporter

import (
	"encoding/json"
	"io"

	"github.com/neulab/globalbench/pkg/core"
)

type JSONReporter struct {
	Writer io.Writer
	Pretty bool
}

func (r JSONReporter) Report(board core.Leaderboard) error {
	encoder := json.NewEncoder(r.Writer)
	if r.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(board)
}
