package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/neulab/globalbench/pkg/core"
)

// DatasetFilter selects datasets in Find. Zero-valued fields are ignored.
type DatasetFilter struct {
	IDs        []string
	Name       string
	StrictName bool
	Sub        string
	Task       string
}

// DatasetStore holds dataset metadata in memory, keyed by "name:sub" with
// "NA" standing in for a missing sub-dataset.
type DatasetStore struct {
	mu       sync.RWMutex
	datasets map[string]core.DatasetMetadata
}

func NewDatasetStore() *DatasetStore {
	return &DatasetStore{datasets: make(map[string]core.DatasetMetadata)}
}

// Add registers dataset metadata, overwriting any previous entry.
func (s *DatasetStore) Add(meta core.DatasetMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[meta.ID()] = meta
}

// FindByID returns a dataset by its canonical id.
func (s *DatasetStore) FindByID(id string) (core.DatasetMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.datasets[id]
	return meta, ok
}

// FindByName returns a dataset by name and sub-dataset.
func (s *DatasetStore) FindByName(name, sub string) (core.DatasetMetadata, bool) {
	return s.FindByID(core.DatasetMetadata{Name: name, Sub: sub}.ID())
}

// Find returns datasets matching the filter plus the total match count.
// page/pageSize of 0 disables paging.
func (s *DatasetStore) Find(filter DatasetFilter, page, pageSize int) ([]core.DatasetMetadata, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allowed map[string]bool
	if len(filter.IDs) > 0 {
		allowed = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			allowed[id] = true
		}
	}

	var matched []core.DatasetMetadata
	for id, meta := range s.datasets {
		if allowed != nil && !allowed[id] {
			continue
		}
		if filter.Name != "" {
			if filter.StrictName {
				if meta.Name != filter.Name {
					continue
				}
			} else if !strings.HasPrefix(meta.Name, filter.Name) {
				continue
			}
		}
		if filter.Sub != "" && meta.Sub != filter.Sub {
			continue
		}
		if filter.Task != "" && !containsString(meta.Tasks, filter.Task) {
			continue
		}
		matched = append(matched, meta)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID() < matched[j].ID() })

	total := len(matched)
	if pageSize > 0 {
		start := page * pageSize
		if start > total {
			start = total
		}
		end := start + pageSize
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
