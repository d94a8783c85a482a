package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neulab/globalbench/pkg/core"
)

func seedLanguages() *LanguageStore {
	s := NewLanguageStore()
	s.Add(core.Language{Code: "eng", Name: "English", Population: 1_500_000_000})
	s.Add(core.Language{Code: "swa", Name: "Swahili", Population: 200_000_000})
	s.Add(core.Language{Code: "yor", Name: "Yoruba", Population: 300_000_000})
	return s
}

func TestLanguageStoreCodesSorted(t *testing.T) {
	s := seedLanguages()
	require.Equal(t, []string{"eng", "swa", "yor"}, s.Codes())
}

func TestLanguageStorePopWeights(t *testing.T) {
	s := seedLanguages()
	weights := s.PopWeights()
	require.InDelta(t, 0.75, weights["eng"], 1e-9)
	require.InDelta(t, 0.10, weights["swa"], 1e-9)
	require.InDelta(t, 0.15, weights["yor"], 1e-9)

	var total float64
	for _, w := range weights {
		total += w
	}
	require.InDelta(t, 1.0, total, 1e-9)
}

func TestLanguageStoreLingWeightsUniform(t *testing.T) {
	s := seedLanguages()
	weights := s.LingWeights()
	for code, w := range weights {
		require.InDelta(t, 1.0/3.0, w, 1e-9, "weight for %s", code)
	}
}

func TestLanguageStoreEmptyWeights(t *testing.T) {
	s := NewLanguageStore()
	require.Empty(t, s.PopWeights())
	require.Empty(t, s.LingWeights())
}

func TestLanguageStoreWeightMapsAndDefaultSets(t *testing.T) {
	s := seedLanguages()

	maps := s.WeightMaps()
	require.Contains(t, maps, core.WeightMapPopulation)
	require.Contains(t, maps, core.WeightMapLinguistic)

	sets := s.DefaultSets()
	require.Equal(t, []string{"eng", "swa", "yor"}, sets[core.DefaultSetAllLang])
}

func TestLoadLanguageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yaml")
	registry := `- code: eng
  name: English
  population: 1500000000
- code: swa
  name: Swahili
  population: 200000000
`
	require.NoError(t, os.WriteFile(path, []byte(registry), 0o644))

	s, err := LoadLanguageFile(path)
	require.NoError(t, err)

	lang, ok := s.Get("swa")
	require.True(t, ok)
	require.Equal(t, "Swahili", lang.Name)
	require.Equal(t, float64(200_000_000), lang.Population)
}

func TestLoadLanguageFileMissing(t *testing.T) {
	_, err := LoadLanguageFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
