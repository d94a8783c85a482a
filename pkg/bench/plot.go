package bench

import (
	"context"
	"sort"
	"sync"

	"github.com/neulab/globalbench/pkg/cache"
	"github.com/neulab/globalbench/pkg/core"
)

// Trends controlling which snapshot dates a view's series keeps.
const (
	TrendIncrease = "increase"
	TrendAll      = "all"
)

// PlotOptions controls score-over-time series generation.
type PlotOptions struct {
	Aggregate AggregateOptions
	// Workers bounds concurrent snapshot computation; <= 0 means 1.
	Workers int
	// Cache, when set, memoizes the computed series per benchmark.
	Cache *cache.Cache
	// Progress, when set, is called after each snapshot completes.
	Progress func(completed, total int)
}

type snapshot struct {
	dateIdx int
	best    map[string]float64
	err     error
}

// GeneratePlots rebuilds the leaderboard as of each distinct submission date
// and records each view's best overall score over time. Abstract benchmarks
// have no plots.
func GeneratePlots(ctx context.Context, cfg core.BenchmarkConfig, systems []core.SystemResult, datasets DatasetLookup, opts PlotOptions) (map[string][]core.SeriesPoint, error) {
	if cfg.Type == "abstract" {
		return map[string][]core.SeriesPoint{}, nil
	}

	cacheKey := cache.Key("plot", cfg.ID)
	if opts.Cache != nil {
		var cached map[string][]core.SeriesPoint
		if opts.Cache.Get(cacheKey, &cached) {
			return cached, nil
		}
	}

	dates := submissionDates(systems)
	snapshots, err := computeSnapshots(ctx, cfg, systems, datasets, dates, opts)
	if err != nil {
		return nil, err
	}

	series := make(map[string][]core.SeriesPoint, len(cfg.Views))
	for _, view := range cfg.Views {
		trend := view.Trend
		if trend == "" {
			trend = TrendIncrease
		}
		var points []core.SeriesPoint
		for i, date := range dates {
			best := snapshots[i][view.Name]
			switch trend {
			case TrendAll:
				points = append(points, core.SeriesPoint{Date: date, Score: best})
			case TrendIncrease:
				if len(points) == 0 || points[len(points)-1].Score < best {
					points = append(points, core.SeriesPoint{Date: date, Score: best})
				}
			}
		}
		series[view.Name] = points
	}

	if opts.Cache != nil {
		if err := opts.Cache.Set(cacheKey, series); err != nil {
			return nil, err
		}
	}
	return series, nil
}

// computeSnapshots evaluates every view's best score at each date with a
// bounded worker pool.
func computeSnapshots(ctx context.Context, cfg core.BenchmarkConfig, systems []core.SystemResult, datasets DatasetLookup, dates []string, opts PlotOptions) ([]map[string]float64, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	// Workers watch a derived context so an early return releases them.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dateCh := make(chan int)
	resultCh := make(chan snapshot, workers)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range dateCh {
			select {
			case <-ctx.Done():
				return
			default:
			}
			best, err := snapshotAt(cfg, systems, datasets, dates[idx], opts.Aggregate)
			select {
			case resultCh <- snapshot{dateIdx: idx, best: best, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}

	go func() {
		defer close(dateCh)
		for i := range dates {
			select {
			case dateCh <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	snapshots := make([]map[string]float64, len(dates))
	completed := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case snap, ok := <-resultCh:
			if !ok {
				return snapshots, nil
			}
			if snap.err != nil {
				cancel()
				for range resultCh {
				}
				return nil, snap.err
			}
			snapshots[snap.dateIdx] = snap.best
			completed++
			if opts.Progress != nil {
				opts.Progress(completed, len(dates))
			}
		}
	}
}

// snapshotAt rebuilds the leaderboard from systems submitted up to date and
// returns the best overall score per view.
func snapshotAt(cfg core.BenchmarkConfig, systems []core.SystemResult, datasets DatasetLookup, date string, opts AggregateOptions) (map[string]float64, error) {
	var included []core.SystemResult
	for _, sys := range systems {
		if sys.CreatedAt.UTC().Format("2006-01-02") <= date {
			included = append(included, sys)
		}
	}

	table, err := BuildTable(cfg, included, datasets, opts.Logger)
	if err != nil {
		return nil, err
	}

	best := make(map[string]float64, len(cfg.Views))
	for _, view := range cfg.Views {
		aggregated, err := ApplyView(table, view, opts)
		if err != nil {
			return nil, err
		}
		best[view.Name] = bestScore(aggregated)
	}
	return best, nil
}

func submissionDates(systems []core.SystemResult) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, sys := range systems {
		date := sys.CreatedAt.UTC().Format("2006-01-02")
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}
