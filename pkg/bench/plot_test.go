package bench_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/neulab/globalbench/pkg/bench"
	"github.com/neulab/globalbench/pkg/cache"
	"github.com/neulab/globalbench/pkg/core"
)

func plotSystems() []core.SystemResult {
	day := func(d int) time.Time {
		return time.Date(2023, 1, d, 12, 0, 0, 0, time.UTC)
	}
	systems := testSystems()
	systems[0].CreatedAt = day(1)
	systems[1].CreatedAt = day(1)
	systems[2].CreatedAt = day(2)

	// A later, worse system should not add a point under the increase trend.
	systems = append(systems, core.SystemResult{
		SystemName: "sys-c", Creator: "carol",
		Dataset:   core.DatasetRef{Name: "flores-eng", Split: "test"},
		Scores:    map[string]float64{"bleu": 0.2},
		CreatedAt: day(3),
	})
	return systems
}

func plotConfig() core.BenchmarkConfig {
	cfg := testConfig()
	cfg.Views = []core.BenchmarkView{
		{Name: "Linguistic", Operations: []core.Operation{{Op: "mean"}}},
		{Name: "All dates", Trend: bench.TrendAll, Operations: []core.Operation{{Op: "mean"}}},
	}
	return cfg
}

func TestGeneratePlotsIncreaseTrend(t *testing.T) {
	series, err := bench.GeneratePlots(context.Background(), plotConfig(), plotSystems(), testDatasets(), bench.PlotOptions{
		Aggregate: testAggregateOptions(),
		Workers:   2,
	})
	require.NoError(t, err)

	// Day 1: only sys-a, best mean 0.65. Days 2 and 3 never beat it
	// (sys-b tops at 0.40, sys-c at 0.10), so one point survives.
	points := series["Linguistic"]
	require.Len(t, points, 1)
	require.Equal(t, "2023-01-01", points[0].Date)
	require.InDelta(t, 0.65, points[0].Score, 1e-9)

	all := series["All dates"]
	require.Len(t, all, 3)
	require.InDelta(t, 0.65, all[0].Score, 1e-9)
	require.InDelta(t, 0.65, all[1].Score, 1e-9)
	require.InDelta(t, 0.65, all[2].Score, 1e-9)
}

func TestGeneratePlotsErrorReleasesWorkers(t *testing.T) {
	cfg := plotConfig()
	cfg.Views = []core.BenchmarkView{
		{Name: "Broken", Operations: []core.Operation{{Op: "median"}}},
	}

	// Enough submission dates that the snapshot workers outlive the first
	// failed result.
	var systems []core.SystemResult
	for d := 1; d <= 6; d++ {
		sys := testSystems()[0]
		sys.CreatedAt = time.Date(2023, 1, d, 12, 0, 0, 0, time.UTC)
		systems = append(systems, sys)
	}

	before := runtime.NumGoroutine()
	_, err := bench.GeneratePlots(context.Background(), cfg, systems, testDatasets(), bench.PlotOptions{
		Aggregate: testAggregateOptions(),
		Workers:   2,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported operation")

	// The failed run must not leave snapshot workers blocked.
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+1
	}, time.Second, 10*time.Millisecond)
}

func TestGeneratePlotsAbstractBenchmark(t *testing.T) {
	cfg := plotConfig()
	cfg.Type = "abstract"
	series, err := bench.GeneratePlots(context.Background(), cfg, plotSystems(), testDatasets(), bench.PlotOptions{
		Aggregate: testAggregateOptions(),
	})
	require.NoError(t, err)
	require.Empty(t, series)
}

func TestGeneratePlotsCache(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	opts := bench.PlotOptions{Aggregate: testAggregateOptions(), Cache: c}
	first, err := bench.GeneratePlots(context.Background(), plotConfig(), plotSystems(), testDatasets(), opts)
	require.NoError(t, err)

	// A second call with no systems at all must hit the cache.
	second, err := bench.GeneratePlots(context.Background(), plotConfig(), nil, testDatasets(), opts)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
