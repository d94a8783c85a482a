package bench

import (
	"fmt"
	"math"

	"github.com/neulab/globalbench/pkg/core"
	"github.com/neulab/globalbench/pkg/metric"
)

func giniRecords(records []core.Record, opts AggregateOptions) []core.Record {
	return []core.Record{overallRecord(metric.Gini(collectScores(records)), opts)}
}

// weightRecords multiplies each score by the operation's weight: either a
// numeric column, or a dimension column mapped through a named weight map.
func weightRecords(records []core.Record, op core.Operation, opts AggregateOptions) ([]core.Record, error) {
	weights := make([]float64, len(records))
	if op.WeightMap != "" {
		wm, ok := opts.WeightMaps[op.WeightMap]
		if !ok {
			return nil, fmt.Errorf("unknown weight map %s", op.WeightMap)
		}
		// Languages absent from the map get weight 0.
		for i, rec := range records {
			weights[i] = wm[rec.Dims[op.Weight]]
		}
	} else {
		for i, rec := range records {
			weights[i] = rec.Nums[op.Weight]
		}
	}

	// Adjust the logit of the weights to make the distribution more or
	// less peaky, then renormalize. An explicit multiplier of 0 flattens
	// the weights to uniform, so unset is the nil pointer, not 0.
	if op.WeightLogitMultiplier != nil {
		var sum float64
		for i, w := range weights {
			weights[i] = math.Exp(math.Log(w+1e-8) * *op.WeightLogitMultiplier)
			sum += weights[i]
		}
		if sum > 0 {
			for i := range weights {
				weights[i] /= sum
			}
		}
	}

	for i := range records {
		records[i].Score *= weights[i]
	}
	if op.Op == "weighted_sum" {
		return aggregateGroups(records, groupColumns(op, opts), "sum", opts)
	}
	return records, nil
}

// addDefault appends a zero-score row for every member of the named default
// set missing from the column, so unserved languages drag averages down.
func addDefault(records []core.Record, op core.Operation, opts AggregateOptions) ([]core.Record, error) {
	set, ok := opts.DefaultSets[op.DefaultSet]
	if !ok {
		return nil, fmt.Errorf("unknown default set %s", op.DefaultSet)
	}
	present := make(map[string]bool, len(records))
	for _, rec := range records {
		present[rec.Dims[op.Column]] = true
	}
	for _, lang := range set {
		if present[lang] {
			continue
		}
		records = append(records, core.Record{
			Dims:  map[string]string{op.Column: lang},
			Score: 0,
		})
	}
	return records, nil
}
