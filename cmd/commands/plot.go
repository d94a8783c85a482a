package commands

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/neulab/globalbench/pkg/bench"
	"github.com/neulab/globalbench/pkg/cache"
)

func newPlotCommand() *cobra.Command {
	var (
		benchmarkPath string
		systemsPath   string
		datasetsPath  string
		languagesPath string
		outputPath    string
		workers       int
		cacheDir      string
		cacheTTL      time.Duration
		noCache       bool
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Compute score-over-time series for a benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, systems, datasets, langs, err := loadInputs(
				resolveString(benchmarkPath, appConfig.Benchmark),
				resolveString(systemsPath, appConfig.Systems),
				resolveString(datasetsPath, appConfig.Datasets),
				resolveString(languagesPath, appConfig.Languages),
			)
			if err != nil {
				return err
			}

			var plotCache *cache.Cache
			if !noCache {
				ttl := cacheTTL
				if ttl == 0 && appConfig.Cache.TTLSeconds > 0 {
					ttl = time.Duration(appConfig.Cache.TTLSeconds) * time.Second
				}
				plotCache, err = cache.New(resolveString(cacheDir, appConfig.Cache.Dir), ttl)
				if err != nil {
					return err
				}
			}

			progress := newProgressBar(progressWriter(cmd), 0)
			opts := bench.PlotOptions{
				Aggregate: bench.AggregateOptions{
					WeightMaps:  langs.WeightMaps(),
					DefaultSets: langs.DefaultSets(),
					Logger:      logger,
				},
				Workers: resolveInt(workers, appConfig.Workers, 1),
				Cache:   plotCache,
				Progress: func(completed, total int) {
					progress.total = total
					progress.Update(completed)
				},
			}

			series, err := bench.GeneratePlots(context.Background(), cfg, systems, datasets, opts)
			if err != nil {
				return err
			}

			writer := io.Writer(cmd.OutOrStdout())
			outputResolved := resolveString(outputPath, appConfig.Output)
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}
			encoder := json.NewEncoder(writer)
			encoder.SetIndent("", "  ")
			return encoder.Encode(series)
		},
	}

	cmd.Flags().StringVar(&benchmarkPath, "benchmark", "", "path to benchmark config (yaml or json)")
	cmd.Flags().StringVar(&systemsPath, "systems", "", "path to system results file (json or jsonl)")
	cmd.Flags().StringVar(&datasetsPath, "datasets", "", "path to dataset metadata file (json)")
	cmd.Flags().StringVar(&languagesPath, "languages", "", "path to language registry (yaml)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of snapshot workers")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "plot cache directory")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "plot cache entry lifetime")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the plot cache")

	return cmd
}
