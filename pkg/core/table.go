package core

// Well-known table columns.
const (
	ColSystemName     = "system_name"
	ColCreator        = "creator"
	ColDatasetName    = "dataset_name"
	ColSubDataset     = "sub_dataset"
	ColDatasetSplit   = "dataset_split"
	ColTask           = "task"
	ColSourceLanguage = "source_language"
	ColTargetLanguage = "target_language"
	ColMetric         = "metric"
	ColMetricWeight   = "metric_weight"
	ColScore          = "score"
)

// Record is one leaderboard row: string dimensions, numeric side columns,
// and the score being aggregated.
type Record struct {
	Dims  map[string]string  `json:"dims"`
	Nums  map[string]float64 `json:"nums,omitempty"`
	Score float64            `json:"score"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{Score: r.Score}
	if r.Dims != nil {
		out.Dims = make(map[string]string, len(r.Dims))
		for k, v := range r.Dims {
			out.Dims[k] = v
		}
	}
	if r.Nums != nil {
		out.Nums = make(map[string]float64, len(r.Nums))
		for k, v := range r.Nums {
			out.Nums[k] = v
		}
	}
	return out
}

// Table is a flat set of leaderboard rows. Columns records the dimension
// column order used when rendering.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Records) == 0
}

// HasColumn reports whether the table carries a dimension column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
