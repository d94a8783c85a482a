package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/neulab/globalbench/pkg/core"
)

func seedSystems(t *testing.T) *SystemStore {
	t.Helper()
	s := NewSystemStore()
	systems := []core.SystemResult{
		{
			SystemName: "mbart-large", Creator: "alice", Task: "machine-translation",
			Dataset: core.DatasetRef{Name: "flores-eng", Split: "test"},
			Scores:  map[string]float64{"bleu": 0.9},
			Tags:    []string{"multilingual"},
		},
		{
			SystemName: "mbart-base", Creator: "alice", Task: "machine-translation",
			Dataset:   core.DatasetRef{Name: "flores-swa", Split: "test"},
			Scores:    map[string]float64{"bleu": 0.4},
			IsPrivate: true, SharedUsers: []string{"bob"},
		},
		{
			SystemName: "opus-mt", Creator: "bob", Task: "machine-translation",
			Dataset: core.DatasetRef{Name: "flores-eng", Split: "dev"},
			Scores:  map[string]float64{"bleu": 0.7},
		},
	}
	for _, sys := range systems {
		_, err := s.Insert(sys)
		require.NoError(t, err)
	}
	return s
}

func TestSystemStoreInsertAssignsID(t *testing.T) {
	s := NewSystemStore()
	sys, err := s.Insert(core.SystemResult{SystemName: "m2m", Creator: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, sys.ID)
	require.False(t, sys.CreatedAt.IsZero())
}

func TestSystemStoreInsertValidation(t *testing.T) {
	s := NewSystemStore()

	_, err := s.Insert(core.SystemResult{Creator: "alice"})
	require.Error(t, err)
	require.Equal(t, 400, StatusCode(err))

	_, err = s.Insert(core.SystemResult{SystemName: "m2m"})
	require.Error(t, err)
	require.Equal(t, 401, StatusCode(err))

	_, err = s.Insert(core.SystemResult{
		SystemName: "m2m", Creator: "alice",
		Dataset: core.DatasetRef{Name: "flores-eng"},
	})
	require.Error(t, err)
	require.Equal(t, 400, StatusCode(err))
}

func TestSystemStoreFindFilters(t *testing.T) {
	s := seedSystems(t)

	found, total, err := s.Find(SystemFilter{NamePrefix: "mbart", Viewer: "alice"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, found, 2)

	found, total, err = s.Find(SystemFilter{Split: "dev"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "opus-mt", found[0].SystemName)

	found, _, err = s.Find(SystemFilter{Tags: []string{"multilingual"}}, 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, _, err = s.Find(SystemFilter{DatasetIn: []core.DatasetRef{
		{Name: "flores-eng", Split: "test"},
		{Name: "flores-swa", Split: "test"},
	}, Viewer: "alice"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestSystemStorePrivateVisibility(t *testing.T) {
	s := seedSystems(t)

	// Anonymous viewers never see private systems.
	_, total, err := s.Find(SystemFilter{}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	// A shared user does.
	_, total, err = s.Find(SystemFilter{Viewer: "bob"}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total)
}

func TestSystemStorePagination(t *testing.T) {
	s := seedSystems(t)

	found, total, err := s.Find(SystemFilter{Viewer: "alice"}, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, found, 2)

	found, _, err = s.Find(SystemFilter{Viewer: "alice"}, 1, 2)
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestSystemStoreFindPreservesIDOrder(t *testing.T) {
	s := NewSystemStore()
	first, err := s.Insert(core.SystemResult{SystemName: "a", Creator: "x", CreatedAt: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	second, err := s.Insert(core.SystemResult{SystemName: "b", Creator: "x"})
	require.NoError(t, err)

	found, _, err := s.Find(SystemFilter{IDs: []string{first.ID, second.ID}}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []string{first.ID, second.ID}, []string{found[0].ID, found[1].ID})
}

func TestSystemStoreDeleteRequiresCreator(t *testing.T) {
	s := NewSystemStore()
	sys, err := s.Insert(core.SystemResult{SystemName: "m2m", Creator: "alice"})
	require.NoError(t, err)

	err = s.Delete(sys.ID, "")
	require.Equal(t, 401, StatusCode(err))

	err = s.Delete(sys.ID, "bob")
	require.Equal(t, 403, StatusCode(err))

	require.NoError(t, s.Delete(sys.ID, "alice"))
	_, err = s.Get(sys.ID, "alice")
	require.Equal(t, 404, StatusCode(err))
}
