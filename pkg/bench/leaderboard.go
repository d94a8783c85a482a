package bench

import (
	"time"

	"github.com/neulab/globalbench/pkg/core"
)

// GenerateLeaderboard builds the benchmark table, applies every view, and
// pivots each result. The untouched rows appear as a final "Original" view.
func GenerateLeaderboard(cfg core.BenchmarkConfig, systems []core.SystemResult, datasets DatasetLookup, opts AggregateOptions) (core.Leaderboard, error) {
	table, err := BuildTable(cfg, systems, datasets, opts.Logger)
	if err != nil {
		return core.Leaderboard{}, err
	}

	board := core.Leaderboard{
		BenchmarkID:   cfg.ID,
		BenchmarkName: cfg.Name,
		GeneratedAt:   time.Now().UTC(),
	}
	for _, view := range cfg.Views {
		aggregated, err := ApplyView(table, view, opts)
		if err != nil {
			return core.Leaderboard{}, err
		}
		board.Views = append(board.Views, Pivot(view.Name, aggregated, opts.rowKey()))
	}
	board.Views = append(board.Views, Pivot("Original", table, opts.rowKey()))
	return board, nil
}

// bestScore returns the highest score in the table, or 0 when empty.
func bestScore(tbl core.Table) float64 {
	if tbl.Empty() {
		return 0
	}
	best := tbl.Records[0].Score
	for _, rec := range tbl.Records[1:] {
		if rec.Score > best {
			best = rec.Score
		}
	}
	return best
}
