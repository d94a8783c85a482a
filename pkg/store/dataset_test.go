package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neulab/globalbench/pkg/core"
)

func seedDatasets() *DatasetStore {
	s := NewDatasetStore()
	s.Add(core.DatasetMetadata{Name: "flores-eng", Splits: []string{"test"}, Tasks: []string{"machine-translation"}, Languages: []string{"eng"}})
	s.Add(core.DatasetMetadata{Name: "flores-swa", Splits: []string{"test"}, Tasks: []string{"machine-translation"}, Languages: []string{"swa"}})
	s.Add(core.DatasetMetadata{Name: "masakhaner", Sub: "swa", Splits: []string{"test"}, Tasks: []string{"ner"}, Languages: []string{"swa"}})
	return s
}

func TestDatasetStoreFindByName(t *testing.T) {
	s := seedDatasets()

	meta, ok := s.FindByName("masakhaner", "swa")
	require.True(t, ok)
	require.Equal(t, "masakhaner:swa", meta.ID())

	_, ok = s.FindByName("masakhaner", "")
	require.False(t, ok)
}

func TestDatasetStoreFindPrefixAndStrict(t *testing.T) {
	s := seedDatasets()

	matched, total := s.Find(DatasetFilter{Name: "flores"}, 0, 0)
	require.Equal(t, 2, total)
	require.Equal(t, "flores-eng", matched[0].Name)

	_, total = s.Find(DatasetFilter{Name: "flores", StrictName: true}, 0, 0)
	require.Zero(t, total)
}

func TestDatasetStoreFindByTask(t *testing.T) {
	s := seedDatasets()

	matched, total := s.Find(DatasetFilter{Task: "ner"}, 0, 0)
	require.Equal(t, 1, total)
	require.Equal(t, "masakhaner", matched[0].Name)
}

func TestDatasetStoreFindPaged(t *testing.T) {
	s := seedDatasets()

	matched, total := s.Find(DatasetFilter{}, 1, 2)
	require.Equal(t, 3, total)
	require.Len(t, matched, 1)
}
