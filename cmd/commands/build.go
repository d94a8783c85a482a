package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/neulab/globalbench/pkg/bench"
	"github.com/neulab/globalbench/pkg/core"
	"github.com/neulab/globalbench/pkg/dataset"
	"github.com/neulab/globalbench/pkg/reporter"
	"github.com/neulab/globalbench/pkg/snapshot"
	"github.com/neulab/globalbench/pkg/store"
)

func newBuildCommand() *cobra.Command {
	var (
		benchmarkPath string
		systemsPath   string
		datasetsPath  string
		languagesPath string
		outputPath    string
		format        string
		byCreator     bool
		snapshotDir   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a benchmark leaderboard",
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

			opts := bench.AggregateOptions{
				ByCreator:   byCreator || appConfig.ByCreator,
				WeightMaps:  langs.WeightMaps(),
				DefaultSets: langs.DefaultSets(),
				Logger:      logger,
			}
			board, err := bench.GenerateLeaderboard(cfg, systems, datasets, opts)
			if err != nil {
				return err
			}

			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = reporter.FormatTable
			}
			writer := io.Writer(os.Stdout)
			outputResolved := resolveString(outputPath, appConfig.Output)
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}
			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(board); err != nil {
				return err
			}

			snapshotResolved := resolveString(snapshotDir, appConfig.Snapshot)
			if snapshotResolved != "" {
				table, err := bench.BuildTable(cfg, systems, datasets, logger)
				if err != nil {
					return err
				}
				path, err := snapshot.Write(snapshotResolved, snapshot.Archive{
					Benchmark: cfg,
					Board:     board,
					Table:     table,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "snapshot written to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&benchmarkPath, "benchmark", "", "path to benchmark config (yaml or json)")
	cmd.Flags().StringVar(&systemsPath, "systems", "", "path to system results file (json or jsonl)")
	cmd.Flags().StringVar(&datasetsPath, "datasets", "", "path to dataset metadata file (json)")
	cmd.Flags().StringVar(&languagesPath, "languages", "", "path to language registry (yaml)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().StringVar(&format, "format", "", "output format (table, json, html, markdown, csv)")
	cmd.Flags().BoolVar(&byCreator, "by-creator", false, "rank creators instead of systems")
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "directory for leaderboard snapshot archives")

	return cmd
}

func loadInputs(benchmarkPath, systemsPath, datasetsPath, languagesPath string) (core.BenchmarkConfig, []core.SystemResult, *store.DatasetStore, *store.LanguageStore, error) {
	if benchmarkPath == "" {
		return core.BenchmarkConfig{}, nil, nil, nil, errors.New("benchmark config path is required")
	}
	if systemsPath == "" {
		return core.BenchmarkConfig{}, nil, nil, nil, errors.New("systems path is required")
	}

	cfg, err := dataset.ReadBenchmarkConfig(benchmarkPath)
	if err != nil {
		return core.BenchmarkConfig{}, nil, nil, nil, err
	}
	systems, err := dataset.ReadSystems(context.Background(), systemsPath)
	if err != nil {
		return core.BenchmarkConfig{}, nil, nil, nil, err
	}

	datasets := store.NewDatasetStore()
	if datasetsPath != "" {
		metas, err := dataset.ReadDatasets(datasetsPath)
		if err != nil {
			return core.BenchmarkConfig{}, nil, nil, nil, err
		}
		for _, meta := range metas {
			datasets.Add(meta)
		}
	}

	langs := store.NewLanguageStore()
	if languagesPath != "" {
		langs, err = store.LoadLanguageFile(languagesPath)
		if err != nil {
			return core.BenchmarkConfig{}, nil, nil, nil, err
		}
	}
	return cfg, systems, datasets, langs, nil
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatHTML:
		return reporter.HTMLReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value int, fallback int, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
