package core

import "time"

// Weight map and default set names understood by view operations.
const (
	WeightMapPopulation = "pop_weight"
	WeightMapLinguistic = "ling_weight"
	DefaultSetAllLang   = "all_lang"
)

// BenchmarkMetric names a metric included in a benchmark and how it is
// weighted when metrics are combined.
type BenchmarkMetric struct {
	Name    string  `json:"name" yaml:"name"`
	Weight  float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Default float64 `json:"default,omitempty" yaml:"default,omitempty"`
}

// Operation is one step of a view's aggregation pipeline.
type Operation struct {
	Op                    string   `json:"op" yaml:"op"`
	GroupBy               []string `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Weight                string   `json:"weight,omitempty" yaml:"weight,omitempty"`
	WeightMap             string   `json:"weight_map,omitempty" yaml:"weight_map,omitempty"`
	WeightLogitMultiplier *float64 `json:"weight_logit_multiplier,omitempty" yaml:"weight_logit_multiplier,omitempty"`
	SkipGroupSystem       bool     `json:"skip_group_system,omitempty" yaml:"skip_group_system,omitempty"`
	DefaultSet            string   `json:"default_set,omitempty" yaml:"default_set,omitempty"`
	Column                string   `json:"column,omitempty" yaml:"column,omitempty"`
	Num                   float64  `json:"num,omitempty" yaml:"num,omitempty"`
}

// BenchmarkView is a named sequence of aggregation operations.
type BenchmarkView struct {
	Name       string      `json:"name" yaml:"name"`
	Trend      string      `json:"trend,omitempty" yaml:"trend,omitempty"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// DatasetConfig selects a dataset for a benchmark and optionally overrides
// the benchmark-level metrics for it.
type DatasetConfig struct {
	Name    string            `json:"dataset_name" yaml:"dataset_name"`
	Sub     string            `json:"sub_dataset,omitempty" yaml:"sub_dataset,omitempty"`
	Split   string            `json:"split,omitempty" yaml:"split,omitempty"`
	Metrics []BenchmarkMetric `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Ref returns the dataset reference with the default "test" split applied.
func (d DatasetConfig) Ref() DatasetRef {
	split := d.Split
	if split == "" {
		split = "test"
	}
	return DatasetRef{Name: d.Name, Sub: d.Sub, Split: split}
}

// SystemQuery selects systems for a benchmark by attribute instead of by an
// explicit dataset list.
type SystemQuery struct {
	DatasetName    string `json:"dataset_name,omitempty" yaml:"dataset_name,omitempty"`
	SubDataset     string `json:"sub_dataset,omitempty" yaml:"sub_dataset,omitempty"`
	Task           string `json:"task,omitempty" yaml:"task,omitempty"`
	SourceLanguage string `json:"source_language,omitempty" yaml:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty" yaml:"target_language,omitempty"`
}

// BenchmarkConfig describes a benchmark. A config may name a parent; unset
// fields are inherited from it.
type BenchmarkConfig struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Parent       string            `json:"parent,omitempty" yaml:"parent,omitempty"`
	Type         string            `json:"type,omitempty" yaml:"type,omitempty"`
	Datasets     []DatasetConfig   `json:"datasets,omitempty" yaml:"datasets,omitempty"`
	SystemQuery  *SystemQuery      `json:"system_query,omitempty" yaml:"system_query,omitempty"`
	Metrics      []BenchmarkMetric `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Views        []BenchmarkView   `json:"views,omitempty" yaml:"views,omitempty"`
	IsPrivate    bool              `json:"is_private" yaml:"is_private"`
	Creator      string            `json:"creator,omitempty" yaml:"creator,omitempty"`
	SharedUsers  []string          `json:"shared_users,omitempty" yaml:"shared_users,omitempty"`
	CreatedAt    time.Time         `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	LastModified time.Time         `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

// MergeParent fills every unset field of the child from the parent and
// returns the merged config. The child's identity fields always win.
func MergeParent(child, parent BenchmarkConfig) BenchmarkConfig {
	merged := parent
	merged.ID = child.ID
	merged.Parent = child.Parent
	merged.IsPrivate = child.IsPrivate
	if child.Name != "" {
		merged.Name = child.Name
	}
	if child.Description != "" {
		merged.Description = child.Description
	}
	if child.Type != "" {
		merged.Type = child.Type
	}
	if len(child.Datasets) > 0 {
		merged.Datasets = child.Datasets
	}
	if child.SystemQuery != nil {
		merged.SystemQuery = child.SystemQuery
	}
	if len(child.Metrics) > 0 {
		merged.Metrics = child.Metrics
	}
	if len(child.Views) > 0 {
		merged.Views = child.Views
	}
	if child.Creator != "" {
		merged.Creator = child.Creator
	}
	if len(child.SharedUsers) > 0 {
		merged.SharedUsers = child.SharedUsers
	}
	if !child.CreatedAt.IsZero() {
		merged.CreatedAt = child.CreatedAt
	}
	if !child.LastModified.IsZero() {
		merged.LastModified = child.LastModified
	}
	return merged
}
