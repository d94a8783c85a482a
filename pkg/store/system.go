package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/neulab/globalbench/pkg/core"
)

// SystemFilter selects systems in Find. Zero-valued fields are ignored.
type SystemFilter struct {
	IDs            []string
	NamePrefix     string
	Task           string
	DatasetName    string
	SubDataset     string
	Split          string
	SourceLanguage string
	TargetLanguage string
	Creator        string
	Tags           []string
	DatasetIn      []core.DatasetRef

	// Viewer controls visibility: private systems are returned only to
	// their creator or a shared user.
	Viewer string
}

// SystemStore holds submitted system results in memory.
type SystemStore struct {
	mu      sync.RWMutex
	systems map[string]core.SystemResult
	order   []string
	seq     int
}

func NewSystemStore() *SystemStore {
	return &SystemStore{systems: make(map[string]core.SystemResult)}
}

// Insert registers a system result, assigning an id and timestamps when
// unset, and returns the stored copy.
func (s *SystemStore) Insert(sys core.SystemResult) (core.SystemResult, error) {
	if sys.SystemName == "" {
		return core.SystemResult{}, errorf(400, "system_name is required")
	}
	if sys.Creator == "" {
		return core.SystemResult{}, errorf(401, "login required")
	}
	if sys.Dataset.Name != "" && sys.Dataset.Split == "" {
		return core.SystemResult{}, errorf(400, "dataset split is required if a dataset is chosen")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sys.ID == "" {
		s.seq++
		sys.ID = fmt.Sprintf("sys-%06d", s.seq)
	} else if _, ok := s.systems[sys.ID]; ok {
		return core.SystemResult{}, errorf(400, "system id %s already exists", sys.ID)
	}
	now := time.Now().UTC()
	if sys.CreatedAt.IsZero() {
		sys.CreatedAt = now
	}
	sys.LastModified = sys.CreatedAt

	s.systems[sys.ID] = sys
	s.order = append(s.order, sys.ID)
	return sys, nil
}

// Get returns a system by id, honoring visibility for the viewer.
func (s *SystemStore) Get(id, viewer string) (core.SystemResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sys, ok := s.systems[id]
	if !ok || !visibleTo(sys, viewer) {
		return core.SystemResult{}, errorf(404, "system id: %s not found", id)
	}
	return sys, nil
}

// Delete removes a system. Only the creator may delete it.
func (s *SystemStore) Delete(id, requester string) error {
	if requester == "" {
		return errorf(401, "login required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sys, ok := s.systems[id]
	if !ok {
		return errorf(404, "system id: %s not found", id)
	}
	if sys.Creator != requester {
		return errorf(403, "you can only delete your own systems")
	}
	delete(s.systems, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns the systems matching the filter plus the total match count.
// Results are ordered newest first unless the filter lists explicit ids, in
// which case id order is preserved. page/pageSize of 0 disables paging.
func (s *SystemStore) Find(filter SystemFilter, page, pageSize int) ([]core.SystemResult, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []core.SystemResult
	for _, id := range s.order {
		sys := s.systems[id]
		if !visibleTo(sys, filter.Viewer) {
			continue
		}
		if matchSystem(sys, filter) {
			matched = append(matched, sys)
		}
	}

	if len(filter.IDs) > 0 {
		orders := make(map[string]int, len(filter.IDs))
		for i, id := range filter.IDs {
			orders[id] = i
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return orders[matched[i].ID] < orders[matched[j].ID]
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

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
	return matched, total, nil
}

func matchSystem(sys core.SystemResult, f SystemFilter) bool {
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if sys.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.NamePrefix != "" && !strings.HasPrefix(sys.SystemName, f.NamePrefix) {
		return false
	}
	if f.Task != "" && sys.Task != f.Task {
		return false
	}
	if f.DatasetName != "" && sys.Dataset.Name != f.DatasetName {
		return false
	}
	if f.SubDataset != "" && sys.Dataset.Sub != f.SubDataset {
		return false
	}
	if f.Split != "" && sys.Dataset.Split != f.Split {
		return false
	}
	if f.SourceLanguage != "" && sys.SourceLanguage != f.SourceLanguage {
		return false
	}
	if f.TargetLanguage != "" && sys.TargetLanguage != f.TargetLanguage {
		return false
	}
	if f.Creator != "" && sys.Creator != f.Creator {
		return false
	}
	for _, tag := range f.Tags {
		found := false
		for _, have := range sys.Tags {
			if have == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.DatasetIn) > 0 {
		found := false
		for _, ref := range f.DatasetIn {
			if sys.Dataset == ref {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func visibleTo(sys core.SystemResult, viewer string) bool {
	if !sys.IsPrivate {
		return true
	}
	if viewer == "" {
		return false
	}
	if sys.Creator == viewer {
		return true
	}
	for _, shared := range sys.SharedUsers {
		if shared == viewer {
			return true
		}
	}
	return false
}
