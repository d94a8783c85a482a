package core

import "time"

// Language is one entry in the language registry.
type Language struct {
	Code       string  `json:"code" yaml:"code"`
	Name       string  `json:"name" yaml:"name"`
	Population float64 `json:"population" yaml:"population"`
}

// DatasetRef identifies the dataset slice a system was evaluated on.
type DatasetRef struct {
	Name  string `json:"dataset_name" yaml:"dataset_name"`
	Sub   string `json:"sub_dataset,omitempty" yaml:"sub_dataset,omitempty"`
	Split string `json:"split" yaml:"split"`
}

// DatasetMetadata describes a registered dataset.
type DatasetMetadata struct {
	Name      string   `json:"dataset_name" yaml:"dataset_name"`
	Sub       string   `json:"sub_dataset,omitempty" yaml:"sub_dataset,omitempty"`
	Splits    []string `json:"splits" yaml:"splits"`
	Tasks     []string `json:"tasks" yaml:"tasks"`
	Languages []string `json:"languages" yaml:"languages"`
}

// ID returns the canonical dataset identifier. A dataset without a
// sub-dataset uses "NA" in the identifier.
func (m DatasetMetadata) ID() string {
	sub := m.Sub
	if sub == "" {
		sub = "NA"
	}
	return m.Name + ":" + sub
}

// SystemResult is one submitted system's scores on one dataset.
type SystemResult struct {
	ID             string             `json:"system_id" yaml:"system_id"`
	SystemName     string             `json:"system_name" yaml:"system_name"`
	Creator        string             `json:"creator" yaml:"creator"`
	Task           string             `json:"task" yaml:"task"`
	Dataset        DatasetRef         `json:"dataset" yaml:"dataset"`
	SourceLanguage string             `json:"source_language,omitempty" yaml:"source_language,omitempty"`
	TargetLanguage string             `json:"target_language,omitempty" yaml:"target_language,omitempty"`
	Scores         map[string]float64 `json:"scores" yaml:"scores"`
	IsPrivate      bool               `json:"is_private" yaml:"is_private"`
	SharedUsers    []string           `json:"shared_users,omitempty" yaml:"shared_users,omitempty"`
	Tags           []string           `json:"system_tags,omitempty" yaml:"system_tags,omitempty"`
	CreatedAt      time.Time          `json:"created_at" yaml:"created_at"`
	LastModified   time.Time          `json:"last_modified" yaml:"last_modified"`
}

// User is a registered benchmark contributor.
type User struct {
	ID                string `json:"id" yaml:"id"`
	Email             string `json:"email" yaml:"email"`
	PreferredUsername string `json:"preferred_username" yaml:"preferred_username"`
}

// TableData is a render-ready leaderboard view: one row per system (or
// creator), one column per residual dimension combination.
type TableData struct {
	Name        string      `json:"name"`
	RowNames    []string    `json:"system_names"`
	ColumnNames []string    `json:"column_names"`
	Scores      [][]float64 `json:"scores"`
	PlotX       []string    `json:"plot_x_values,omitempty"`
	PlotY       []float64   `json:"plot_y_values,omitempty"`
}

// SeriesPoint is one point of a score-over-time series.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// Leaderboard is a fully computed benchmark: one table per view plus the
// untouched original rows.
type Leaderboard struct {
	BenchmarkID   string      `json:"benchmark_id"`
	BenchmarkName string      `json:"benchmark_name"`
	Views         []TableData `json:"views"`
	GeneratedAt   time.Time   `json:"generated_at"`
}
