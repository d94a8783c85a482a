package reporter

import "github.com/neulab/globalbench/pkg/core"

// Reporter renders a computed leaderboard.
type Reporter interface {
	Report(board core.Leaderboard) error
}

const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)
