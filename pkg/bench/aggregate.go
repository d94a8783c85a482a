package bench

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/neulab/globalbench/pkg/core"
)

// OverallRow labels the single row produced when an operation aggregates
// without grouping.
const OverallRow = "Overall"

// AggregateOptions supplies the context view operations need.
type AggregateOptions struct {
	// ByCreator groups rows by creator instead of system name.
	ByCreator bool
	// WeightMaps resolves operation weight_map names, e.g. pop_weight.
	WeightMaps map[string]map[string]float64
	// DefaultSets resolves operation default_set names, e.g. all_lang.
	DefaultSets map[string][]string
	Logger      *zap.Logger
}

func (o AggregateOptions) rowKey() string {
	if o.ByCreator {
		return core.ColCreator
	}
	return core.ColSystemName
}

func (o AggregateOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// ApplyView runs a view's operations over the table in sequence and returns
// the aggregated result. An empty table passes through unchanged.
func ApplyView(tbl core.Table, view core.BenchmarkView, opts AggregateOptions) (core.Table, error) {
	if tbl.Empty() {
		return tbl, nil
	}
	logger := opts.logger()

	records := make([]core.Record, len(tbl.Records))
	for i, rec := range tbl.Records {
		records[i] = rec.Clone()
	}

	for _, op := range view.Operations {
		var err error
		records, err = applyOperation(records, op, opts)
		if err != nil {
			return core.Table{}, fmt.Errorf("view %s: %w", view.Name, err)
		}
		if op.Op == "add_default" {
			continue
		}
		for i := range records {
			if math.IsNaN(records[i].Score) {
				logger.Warn("operation produced NaN, replacing with 0", zap.String("op", op.Op))
				records[i].Score = 0
			}
		}
	}

	// Only dimension columns and the score survive aggregation.
	for i := range records {
		records[i].Nums = nil
	}
	return core.Table{Columns: columnsOf(records, tbl.Columns), Records: records}, nil
}

func applyOperation(records []core.Record, op core.Operation, opts AggregateOptions) ([]core.Record, error) {
	switch op.Op {
	case "mean", "sum", "max", "min":
		return aggregateGroups(records, groupColumns(op, opts), op.Op, opts)
	case "gini":
		if len(op.GroupBy) > 0 {
			opts.logger().Warn("cannot group and gini, skipping grouping")
		}
		return giniRecords(records, opts), nil
	case "multiply", "weighted_sum":
		return weightRecords(records, op, opts)
	case "add_default":
		return addDefault(records, op, opts)
	case "subtract":
		for i := range records {
			records[i].Score = op.Num - records[i].Score
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unsupported operation %s", op.Op)
	}
}

// groupColumns resolves an operation's grouping, prepending the system (or
// creator) column unless the operation opts out.
func groupColumns(op core.Operation, opts AggregateOptions) []string {
	cols := append([]string(nil), op.GroupBy...)
	if !op.SkipGroupSystem {
		cols = append([]string{opts.rowKey()}, cols...)
	}
	return cols
}

type group struct {
	dims   map[string]string
	scores []float64
	nums   map[string][]float64
}

// groupRecords partitions records by the values of cols, preserving
// first-seen order.
func groupRecords(records []core.Record, cols []string) []*group {
	byKey := make(map[string]*group)
	var ordered []*group
	for _, rec := range records {
		key := ""
		for _, col := range cols {
			key += rec.Dims[col] + "\x00"
		}
		g, ok := byKey[key]
		if !ok {
			dims := make(map[string]string, len(cols))
			for _, col := range cols {
				dims[col] = rec.Dims[col]
			}
			g = &group{dims: dims, nums: make(map[string][]float64)}
			byKey[key] = g
			ordered = append(ordered, g)
		}
		g.scores = append(g.scores, rec.Score)
		for name, v := range rec.Nums {
			g.nums[name] = append(g.nums[name], v)
		}
	}
	return ordered
}

func aggregateGroups(records []core.Record, cols []string, op string, opts AggregateOptions) ([]core.Record, error) {
	if len(cols) == 0 {
		value, err := reduce(collectScores(records), op)
		if err != nil {
			return nil, err
		}
		nums, err := reduceNums(collectNums(records), op)
		if err != nil {
			return nil, err
		}
		rec := overallRecord(value, opts)
		rec.Nums = nums
		return []core.Record{rec}, nil
	}

	groups := groupRecords(records, cols)
	out := make([]core.Record, 0, len(groups))
	for _, g := range groups {
		value, err := reduce(g.scores, op)
		if err != nil {
			return nil, err
		}
		nums, err := reduceNums(g.nums, op)
		if err != nil {
			return nil, err
		}
		out = append(out, core.Record{Dims: g.dims, Nums: nums, Score: value})
	}
	return out, nil
}

// reduceNums applies the reduction to every numeric side column, so columns
// like metric_weight stay usable by later weighting operations.
func reduceNums(nums map[string][]float64, op string) (map[string]float64, error) {
	if len(nums) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(nums))
	for name, values := range nums {
		value, err := reduce(values, op)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

func collectNums(records []core.Record) map[string][]float64 {
	nums := make(map[string][]float64)
	for _, rec := range records {
		for name, v := range rec.Nums {
			nums[name] = append(nums[name], v)
		}
	}
	return nums
}

func reduce(scores []float64, op string) (float64, error) {
	if len(scores) == 0 {
		return 0, nil
	}
	switch op {
	case "mean":
		var sum float64
		for _, s := range scores {
			sum += s
		}
		return sum / float64(len(scores)), nil
	case "sum":
		var sum float64
		for _, s := range scores {
			sum += s
		}
		return sum, nil
	case "max":
		best := scores[0]
		for _, s := range scores[1:] {
			if s > best {
				best = s
			}
		}
		return best, nil
	case "min":
		worst := scores[0]
		for _, s := range scores[1:] {
			if s < worst {
				worst = s
			}
		}
		return worst, nil
	default:
		return 0, fmt.Errorf("unsupported reduction %s", op)
	}
}

func collectScores(records []core.Record) []float64 {
	scores := make([]float64, len(records))
	for i, rec := range records {
		scores[i] = rec.Score
	}
	return scores
}

func overallRecord(value float64, opts AggregateOptions) core.Record {
	return core.Record{
		Dims:  map[string]string{opts.rowKey(): OverallRow},
		Score: value,
	}
}

// columnsOf returns the dimension columns present in the records, keeping
// prior column order for columns that survived.
func columnsOf(records []core.Record, prior []string) []string {
	present := make(map[string]bool)
	for _, rec := range records {
		for col := range rec.Dims {
			present[col] = true
		}
	}
	var out []string
	for _, col := range prior {
		if present[col] {
			out = append(out, col)
			delete(present, col)
		}
	}
	rest := make([]string, 0, len(present))
	for col := range present {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
