package bench

import (
	"sort"
	"strings"

	"github.com/neulab/globalbench/pkg/core"
)

// Pivot turns an aggregated table into render-ready TableData: one row per
// value of rowKey, one column per residual dimension combination, rows
// sorted by the first column descending.
func Pivot(viewName string, tbl core.Table, rowKey string) core.TableData {
	var elemNames []string
	for _, col := range tbl.Columns {
		if col != core.ColScore && col != rowKey {
			elemNames = append(elemNames, col)
		}
	}

	rowSet := make(map[string]bool)
	colSet := make(map[string]bool)
	colNames := make([]string, len(tbl.Records))
	for i, rec := range tbl.Records {
		rowSet[rec.Dims[rowKey]] = true
		colNames[i] = columnName(elemNames, rec)
		colSet[colNames[i]] = true
	}

	rows := sortedKeys(rowSet)
	cols := sortedKeys(colSet)
	if len(rows) == 0 || len(cols) == 0 {
		return core.TableData{Name: viewName, RowNames: []string{}, ColumnNames: []string{}, Scores: [][]float64{}}
	}

	rowIdx := indexOf(rows)
	colIdx := indexOf(cols)
	scores := make([][]float64, len(rows))
	for i := range scores {
		scores[i] = make([]float64, len(cols))
	}
	for i, rec := range tbl.Records {
		scores[rowIdx[rec.Dims[rowKey]]][colIdx[colNames[i]]] = rec.Score
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]][0] > scores[order[b]][0]
	})

	sortedRows := make([]string, len(rows))
	sortedScores := make([][]float64, len(rows))
	for i, idx := range order {
		sortedRows[i] = rows[idx]
		sortedScores[i] = scores[idx]
	}

	return core.TableData{
		Name:        viewName,
		RowNames:    sortedRows,
		ColumnNames: cols,
		Scores:      sortedScores,
	}
}

// columnName builds the pivoted column label from the non-empty residual
// dimension values.
func columnName(elemNames []string, rec core.Record) string {
	parts := []string{core.ColScore}
	for _, elem := range elemNames {
		if v := rec.Dims[elem]; v != "" {
			parts = append(parts, elem+"="+v)
		}
	}
	return strings.Join(parts, "\n")
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(keys []string) map[string]int {
	idx := make(map[string]int, len(keys))
	for i, k := range keys {
		idx[k] = i
	}
	return idx
}
