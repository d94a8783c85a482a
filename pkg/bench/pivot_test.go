package bench_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neulab/globalbench/pkg/bench"
	"github.com/neulab/globalbench/pkg/core"
)

func TestPivot(t *testing.T) {
	table := core.Table{
		Columns: []string{core.ColSystemName, core.ColMetric},
		Records: []core.Record{
			{Dims: map[string]string{core.ColSystemName: "sys-a", core.ColMetric: "bleu"}, Score: 0.9},
			{Dims: map[string]string{core.ColSystemName: "sys-a", core.ColMetric: "comet"}, Score: 0.6},
			{Dims: map[string]string{core.ColSystemName: "sys-b", core.ColMetric: "bleu"}, Score: 0.95},
			{Dims: map[string]string{core.ColSystemName: "sys-b", core.ColMetric: "comet"}, Score: 0.5},
		},
	}

	data := bench.Pivot("Original", table, core.ColSystemName)
	require.Equal(t, "Original", data.Name)
	require.Equal(t, []string{"score\nmetric=bleu", "score\nmetric=comet"}, data.ColumnNames)
	// Rows sorted by the first column descending.
	require.Equal(t, []string{"sys-b", "sys-a"}, data.RowNames)
	require.InDelta(t, 0.95, data.Scores[0][0], 1e-9)
	require.InDelta(t, 0.5, data.Scores[0][1], 1e-9)
	require.InDelta(t, 0.9, data.Scores[1][0], 1e-9)
	require.InDelta(t, 0.6, data.Scores[1][1], 1e-9)
}

func TestPivotEmpty(t *testing.T) {
	data := bench.Pivot("Empty", core.Table{}, core.ColSystemName)
	require.Empty(t, data.RowNames)
	require.Empty(t, data.ColumnNames)
}

func TestPivotFillsMissingCells(t *testing.T) {
	table := core.Table{
		Columns: []string{core.ColSystemName, core.ColMetric},
		Records: []core.Record{
			{Dims: map[string]string{core.ColSystemName: "sys-a", core.ColMetric: "bleu"}, Score: 0.9},
			{Dims: map[string]string{core.ColSystemName: "sys-b", core.ColMetric: "comet"}, Score: 0.5},
		},
	}

	data := bench.Pivot("Sparse", table, core.ColSystemName)
	require.Len(t, data.RowNames, 2)
	require.Len(t, data.ColumnNames, 2)
	// sys-b never scored bleu, so its cell defaults to 0.
	for i, name := range data.RowNames {
		if name == "sys-b" {
			require.InDelta(t, 0.0, data.Scores[i][0], 1e-9)
		}
	}
}

func TestGenerateLeaderboard(t *testing.T) {
	cfg := testConfig()
	cfg.Views = []core.BenchmarkView{
		{Name: "Linguistic", Operations: []core.Operation{{Op: "mean"}}},
	}

	board, err := bench.GenerateLeaderboard(cfg, testSystems(), testDatasets(), testAggregateOptions())
	require.NoError(t, err)
	require.Equal(t, "globalbench-mt", board.BenchmarkID)
	// The configured view plus the untouched Original rows.
	require.Len(t, board.Views, 2)
	require.Equal(t, "Linguistic", board.Views[0].Name)
	require.Equal(t, "Original", board.Views[1].Name)
	require.Equal(t, []string{"sys-a", "sys-b"}, board.Views[0].RowNames)
}
