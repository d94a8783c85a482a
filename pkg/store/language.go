package store

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/neulab/globalbench/pkg/core"
)

// LanguageStore holds the language registry: speaker populations and the
// weight maps view operations refer to by name.
type LanguageStore struct {
	mu        sync.RWMutex
	languages map[string]core.Language
}

func NewLanguageStore() *LanguageStore {
	return &LanguageStore{languages: make(map[string]core.Language)}
}

// LoadLanguageFile reads a YAML language registry.
func LoadLanguageFile(path string) (*LanguageStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var langs []core.Language
	if err := yaml.Unmarshal(data, &langs); err != nil {
		return nil, fmt.Errorf("language registry %s: %w", path, err)
	}
	s := NewLanguageStore()
	for _, lang := range langs {
		s.Add(lang)
	}
	return s, nil
}

// Add registers a language, overwriting any previous entry for the code.
func (s *LanguageStore) Add(lang core.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages[lang.Code] = lang
}

// Get returns a language by code.
func (s *LanguageStore) Get(code string) (core.Language, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lang, ok := s.languages[code]
	return lang, ok
}

// Codes returns every registered language code, sorted.
func (s *LanguageStore) Codes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.languages))
	for code := range s.languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// PopWeights returns each language's share of the total speaker population.
func (s *LanguageStore) PopWeights() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, lang := range s.languages {
		total += lang.Population
	}
	weights := make(map[string]float64, len(s.languages))
	if total == 0 {
		return weights
	}
	for code, lang := range s.languages {
		weights[code] = lang.Population / total
	}
	return weights
}

// LingWeights returns a uniform weight for every registered language.
func (s *LanguageStore) LingWeights() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	weights := make(map[string]float64, len(s.languages))
	if len(s.languages) == 0 {
		return weights
	}
	uniform := 1.0 / float64(len(s.languages))
	for code := range s.languages {
		weights[code] = uniform
	}
	return weights
}

// WeightMaps returns the named weight maps view operations can reference.
func (s *LanguageStore) WeightMaps() map[string]map[string]float64 {
	return map[string]map[string]float64{
		core.WeightMapPopulation: s.PopWeights(),
		core.WeightMapLinguistic: s.LingWeights(),
	}
}

// DefaultSets returns the named language sets used by add_default.
func (s *LanguageStore) DefaultSets() map[string][]string {
	return map[string][]string{
		core.DefaultSetAllLang: s.Codes(),
	}
}
