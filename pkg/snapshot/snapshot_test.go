package snapshot

import (
	"archive/zip"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/neulab/globalbench/pkg/core"
)

func testArchive() Archive {
	return Archive{
		Benchmark: core.BenchmarkConfig{ID: "globalbench-mt", Name: "GlobalBench MT"},
		Board: core.Leaderboard{
			BenchmarkID:   "globalbench-mt",
			BenchmarkName: "GlobalBench MT",
			Views: []core.TableData{
				{
					Name:        "Linguistic",
					RowNames:    []string{"mbart", "opus-mt"},
					ColumnNames: []string{"score"},
					Scores:      [][]float64{{0.65}, {0.4}},
				},
			},
			GeneratedAt: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		Table: core.Table{
			Columns: []string{core.ColSystemName, core.ColScore},
			Records: []core.Record{
				{Dims: map[string]string{core.ColSystemName: "mbart"}, Score: 0.65},
			},
		},
		Series: map[string][]core.SeriesPoint{
			"Linguistic": {{Date: "2023-05-01", Score: 0.65}},
		},
		CreatedAt: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, testArchive())
	require.NoError(t, err)
	require.Equal(t, "2023-05-01T12-00-00_globalbench-mt.board", filepath.Base(path))

	arch, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, Version, arch.Version)
	require.Equal(t, "globalbench-mt", arch.Benchmark.ID)
	require.Len(t, arch.Board.Views, 1)
	require.Equal(t, [][]float64{{0.65}, {0.4}}, arch.Board.Views[0].Scores)
	require.Equal(t, 0.65, arch.Table.Records[0].Score)
	require.Equal(t, "2023-05-01", arch.Series["Linguistic"][0].Date)
}

func TestWriteArchiveLayout(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, testArchive())
	require.NoError(t, err)

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
		// Entries are stored uncompressed with no data descriptor so the
		// archive can be read as a stream.
		require.Equal(t, zip.Store, f.Method, f.Name)
		require.Zero(t, f.Flags&0x8, f.Name)
	}
	require.Equal(t, []string{
		"header.json",
		"board.json",
		"table.json",
		"views/1_Linguistic.json",
		"series.json",
	}, names)
}

func TestWriteRequiresDir(t *testing.T) {
	_, err := Write("", testArchive())
	require.Error(t, err)
}

func TestWriteDefaultsVersionAndTime(t *testing.T) {
	dir := t.TempDir()

	arch := testArchive()
	arch.Version = 0
	arch.CreatedAt = time.Time{}

	path, err := Write(dir, arch)
	require.NoError(t, err)

	got, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, Version, got.Version)
	require.False(t, got.CreatedAt.IsZero())
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, "globalbench-mt", sanitizeName("globalbench-mt"))
	require.Equal(t, "AllDates", sanitizeName("All Dates!"))
	require.Equal(t, "", sanitizeName("??"))
}

func TestBuildFileNameFallback(t *testing.T) {
	arch := Archive{CreatedAt: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)}
	name := buildFileName(arch)
	require.True(t, strings.HasSuffix(name, "_benchmark.board"), name)
}
