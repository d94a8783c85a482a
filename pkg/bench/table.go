// Package bench builds leaderboard tables from submitted system results and
// aggregates them through benchmark view pipelines.
package bench

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/neulab/globalbench/pkg/core"
)

// DatasetLookup resolves dataset metadata during table construction.
type DatasetLookup interface {
	FindByName(name, sub string) (core.DatasetMetadata, bool)
}

var baseColumns = []string{
	core.ColSystemName,
	core.ColDatasetName,
	core.ColSubDataset,
	core.ColDatasetSplit,
	core.ColTask,
	core.ColCreator,
	core.ColSourceLanguage,
	core.ColTargetLanguage,
	core.ColMetric,
}

// BuildTable flattens system results into one row per
// (system, dataset, metric). Config-listed datasets restrict and order the
// rows; otherwise datasets are collected from the systems themselves.
func BuildTable(cfg core.BenchmarkConfig, systems []core.SystemResult, datasets DatasetLookup, logger *zap.Logger) (core.Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsConfigs, refToIdx := collectDatasets(cfg, systems)
	if len(cfg.Datasets) > 0 {
		kept := systems[:0:0]
		for _, sys := range systems {
			if _, ok := refToIdx[sys.Dataset]; ok {
				kept = append(kept, sys)
			}
		}
		systems = kept
	}

	metadatas := make([]*core.DatasetMetadata, len(dsConfigs))
	for i, dc := range dsConfigs {
		meta, ok := datasets.FindByName(dc.Name, dc.Sub)
		if !ok {
			logger.Warn("dataset not found",
				zap.String("dataset", dc.Name),
				zap.String("sub_dataset", dc.Sub))
			continue
		}
		metadatas[i] = &meta
	}

	// One slot per dataset config so every system gets a row (with the
	// metric default) even for datasets it never submitted to.
	bySystem := make(map[string][]*core.SystemResult)
	creators := make(map[string]string)
	var systemOrder []string
	for i := range systems {
		sys := &systems[i]
		if _, ok := bySystem[sys.SystemName]; !ok {
			bySystem[sys.SystemName] = make([]*core.SystemResult, len(dsConfigs))
			systemOrder = append(systemOrder, sys.SystemName)
		}
		bySystem[sys.SystemName][refToIdx[sys.Dataset]] = sys
		creators[sys.SystemName] = sys.Creator
	}

	table := core.Table{Columns: append([]string(nil), baseColumns...)}
	for _, sysName := range systemOrder {
		slots := bySystem[sysName]
		for i, dc := range dsConfigs {
			meta := metadatas[i]
			if meta == nil {
				continue
			}
			metrics := dc.Metrics
			if len(metrics) == 0 {
				metrics = cfg.Metrics
			}
			if len(metrics) == 0 {
				return core.Table{}, fmt.Errorf(
					"metrics must be specified either on a global or local level, but %s -- %s -- %s specified neither",
					dc.Name, dc.Sub, dc.Ref().Split)
			}
			for _, m := range metrics {
				rec, err := buildRecord(sysName, creators[sysName], dc, *meta, m, len(metrics), slots[i], logger)
				if err != nil {
					return core.Table{}, err
				}
				table.Records = append(table.Records, rec)
			}
		}
	}
	return table, nil
}

func buildRecord(sysName, creator string, dc core.DatasetConfig, meta core.DatasetMetadata, m core.BenchmarkMetric, metricCount int, sys *core.SystemResult, logger *zap.Logger) (core.Record, error) {
	if metricCount == 0 {
		return core.Record{}, errors.New("bench: metric count must be positive")
	}
	weight := m.Weight
	if weight == 0 {
		weight = 1.0 / float64(metricCount)
	}

	score := m.Default
	task := ""
	if sys != nil {
		if v, ok := sys.Scores[m.Name]; ok {
			score = v
		}
		task = sys.Task
	}
	if task == "" && len(meta.Tasks) > 0 {
		task = meta.Tasks[0]
	}

	src, tgt := datasetLanguages(meta, logger)
	ref := dc.Ref()
	return core.Record{
		Dims: map[string]string{
			core.ColSystemName:     sysName,
			core.ColCreator:        creator,
			core.ColDatasetName:    ref.Name,
			core.ColSubDataset:     ref.Sub,
			core.ColDatasetSplit:   ref.Split,
			core.ColTask:           task,
			core.ColSourceLanguage: src,
			core.ColTargetLanguage: tgt,
			core.ColMetric:         m.Name,
		},
		Nums:  map[string]float64{core.ColMetricWeight: weight},
		Score: score,
	}, nil
}

func datasetLanguages(meta core.DatasetMetadata, logger *zap.Logger) (src, tgt string) {
	if len(meta.Languages) == 0 {
		logger.Warn("no languages found for dataset", zap.String("dataset", meta.Name))
		return "eng", "eng"
	}
	return meta.Languages[0], meta.Languages[len(meta.Languages)-1]
}

// collectDatasets returns the benchmark's dataset configs, either from the
// config itself or deduplicated from the systems, plus a ref index.
func collectDatasets(cfg core.BenchmarkConfig, systems []core.SystemResult) ([]core.DatasetConfig, map[core.DatasetRef]int) {
	refToIdx := make(map[core.DatasetRef]int)
	var dsConfigs []core.DatasetConfig

	if len(cfg.Datasets) > 0 {
		for _, dc := range cfg.Datasets {
			if _, ok := refToIdx[dc.Ref()]; ok {
				continue
			}
			refToIdx[dc.Ref()] = len(dsConfigs)
			dsConfigs = append(dsConfigs, dc)
		}
		return dsConfigs, refToIdx
	}

	for _, sys := range systems {
		if sys.Dataset.Name == "" {
			continue
		}
		if _, ok := refToIdx[sys.Dataset]; ok {
			continue
		}
		refToIdx[sys.Dataset] = len(dsConfigs)
		dsConfigs = append(dsConfigs, core.DatasetConfig{
			Name:  sys.Dataset.Name,
			Sub:   sys.Dataset.Sub,
			Split: sys.Dataset.Split,
		})
	}
	return dsConfigs, refToIdx
}
