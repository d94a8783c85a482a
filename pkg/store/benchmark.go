package store

import (
	"sort"
	"sync"
	"time"

	"github.com/neulab/globalbench/pkg/core"
)

// BenchmarkStore holds benchmark configurations and the featured list.
type BenchmarkStore struct {
	mu       sync.RWMutex
	configs  map[string]core.BenchmarkConfig
	featured []string
}

func NewBenchmarkStore() *BenchmarkStore {
	return &BenchmarkStore{configs: make(map[string]core.BenchmarkConfig)}
}

// Create registers a new benchmark config.
func (s *BenchmarkStore) Create(cfg core.BenchmarkConfig) (core.BenchmarkConfig, error) {
	if cfg.ID == "" {
		return core.BenchmarkConfig{}, errorf(400, "benchmark id is required")
	}
	if cfg.Creator == "" {
		return core.BenchmarkConfig{}, errorf(401, "login required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[cfg.ID]; ok {
		return core.BenchmarkConfig{}, errorf(400, "benchmark id %s already exists", cfg.ID)
	}
	now := time.Now().UTC()
	cfg.CreatedAt = now
	cfg.LastModified = now
	s.configs[cfg.ID] = cfg
	return cfg, nil
}

// Get returns the raw (unresolved) config.
func (s *BenchmarkStore) Get(id string) (core.BenchmarkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id)
}

func (s *BenchmarkStore) getLocked(id string) (core.BenchmarkConfig, error) {
	cfg, ok := s.configs[id]
	if !ok {
		return core.BenchmarkConfig{}, errorf(404, "benchmark id: %s not found", id)
	}
	return cfg, nil
}

// Resolve returns the config with every unset field inherited from its
// parent chain.
func (s *BenchmarkStore) Resolve(id string) (core.BenchmarkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(id, 0)
}

func (s *BenchmarkStore) resolveLocked(id string, depth int) (core.BenchmarkConfig, error) {
	if depth > 10 {
		return core.BenchmarkConfig{}, errorf(500, "benchmark parent chain too deep at %s", id)
	}
	cfg, err := s.getLocked(id)
	if err != nil {
		return core.BenchmarkConfig{}, err
	}
	if cfg.Parent == "" {
		return cfg, nil
	}
	parent, err := s.resolveLocked(cfg.Parent, depth+1)
	if err != nil {
		return core.BenchmarkConfig{}, err
	}
	return core.MergeParent(cfg, parent), nil
}

// Find returns resolved configs, optionally restricted to one id or to the
// children of a parent, honoring visibility for the viewer.
func (s *BenchmarkStore) Find(id, parent, viewer string) ([]core.BenchmarkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.BenchmarkConfig
	for cfgID, cfg := range s.configs {
		if id != "" && cfgID != id {
			continue
		}
		if parent != "" && cfg.Parent != parent {
			continue
		}
		if !benchmarkVisibleTo(cfg, viewer) {
			continue
		}
		resolved, err := s.resolveLocked(cfgID, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	sortConfigs(out)
	return out, nil
}

// Update applies the non-zero fields of props to an existing config so unset
// update fields never clobber stored values.
func (s *BenchmarkStore) Update(id string, props core.BenchmarkConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.getLocked(id)
	if err != nil {
		return err
	}
	props.ID = cfg.ID
	props.Creator = cfg.Creator
	props.CreatedAt = cfg.CreatedAt
	merged := core.MergeParent(props, cfg)
	merged.Parent = cfg.Parent
	if props.Parent != "" {
		merged.Parent = props.Parent
	}
	merged.LastModified = time.Now().UTC()
	s.configs[id] = merged
	return nil
}

// Delete removes a config. Only the creator may delete it.
func (s *BenchmarkStore) Delete(id, requester string) error {
	if requester == "" {
		return errorf(401, "login required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.getLocked(id)
	if err != nil {
		return err
	}
	if cfg.Creator != requester {
		return errorf(403, "you can only delete your own benchmark")
	}
	delete(s.configs, id)
	return nil
}

// SetFeatured replaces the featured benchmark list.
func (s *BenchmarkStore) SetFeatured(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featured = append([]string(nil), ids...)
}

// Featured returns the resolved featured configs in list order.
func (s *BenchmarkStore) Featured() ([]core.BenchmarkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.featured == nil {
		return nil, errorf(500, "featured list not found")
	}
	out := make([]core.BenchmarkConfig, 0, len(s.featured))
	for _, id := range s.featured {
		cfg, err := s.resolveLocked(id, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

func benchmarkVisibleTo(cfg core.BenchmarkConfig, viewer string) bool {
	if !cfg.IsPrivate {
		return true
	}
	if viewer == "" {
		return false
	}
	if cfg.Creator == viewer {
		return true
	}
	for _, shared := range cfg.SharedUsers {
		if shared == viewer {
			return true
		}
	}
	return false
}

func sortConfigs(configs []core.BenchmarkConfig) {
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
}
