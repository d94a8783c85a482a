package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neulab/globalbench/pkg/core"
)

// ReadBenchmarkConfig loads a benchmark config from a YAML or JSON file.
func ReadBenchmarkConfig(path string) (core.BenchmarkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.BenchmarkConfig{}, err
	}

	var cfg core.BenchmarkConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		// Sniff: YAML accepts JSON, so default to YAML.
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return core.BenchmarkConfig{}, fmt.Errorf("benchmark config %s: %w", path, err)
	}
	if cfg.ID == "" {
		return core.BenchmarkConfig{}, fmt.Errorf("benchmark config %s: id is required", path)
	}
	return cfg, nil
}
