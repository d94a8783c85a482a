// Package dataset loads system results and dataset metadata from JSON and
// JSONL files.
package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/neulab/globalbench/pkg/core"
)

// SystemFile streams system results from a JSON array or JSONL file.
type SystemFile struct {
	Path     string
	NameHint string
}

func NewSystemFile(path string) *SystemFile {
	return &SystemFile{Path: path}
}

func (f *SystemFile) Name() string {
	if f.NameHint != "" {
		return f.NameHint
	}
	return filepath.Base(f.Path)
}

func (f *SystemFile) Len(ctx context.Context) (int, error) {
	format, err := detectFormat(f.Path)
	if err != nil {
		return 0, err
	}

	switch format {
	case "json":
		systems, err := loadJSONSystems(f.Path)
		if err != nil {
			return 0, err
		}
		return len(systems), nil
	case "jsonl":
		return countJSONLLines(ctx, f.Path)
	default:
		return 0, errors.New("dataset: unsupported format")
	}
}

func (f *SystemFile) Results(ctx context.Context) (<-chan core.SystemResult, <-chan error) {
	resultCh := make(chan core.SystemResult)
	errCh := make(chan error, 1)

	go func() {
		defer close(resultCh)
		defer close(errCh)

		format, err := detectFormat(f.Path)
		if err != nil {
			errCh <- err
			return
		}

		switch format {
		case "json":
			systems, err := loadJSONSystems(f.Path)
			if err != nil {
				errCh <- err
				return
			}
			for _, sys := range systems {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case resultCh <- sys:
				}
			}
		case "jsonl":
			if err := streamJSONL(ctx, f.Path, resultCh); err != nil {
				errCh <- err
			}
		default:
			errCh <- errors.New("dataset: unsupported format")
		}
	}()

	return resultCh, errCh
}

// ReadSystems loads every system result from a file at once.
func ReadSystems(ctx context.Context, path string) ([]core.SystemResult, error) {
	file := NewSystemFile(path)
	resultCh, errCh := file.Results(ctx)

	var systems []core.SystemResult
	for sys := range resultCh {
		systems = append(systems, sys)
	}
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return systems, nil
}

// ReadDatasets loads dataset metadata from a JSON array file.
func ReadDatasets(path string) ([]core.DatasetMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var datasets []core.DatasetMetadata
	if err := json.NewDecoder(file).Decode(&datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

func detectFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jsonl":
		return "jsonl", nil
	case ".json":
		return "json", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if b == '[' {
			return "json", nil
		}
		if b == '{' {
			return "jsonl", nil
		}
		return "", errors.New("dataset: unsupported format")
	}
}

func loadJSONSystems(path string) ([]core.SystemResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var systems []core.SystemResult
	if err := json.NewDecoder(file).Decode(&systems); err != nil {
		return nil, err
	}
	return systems, nil
}

func streamJSONL(ctx context.Context, path string, out chan<- core.SystemResult) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var sys core.SystemResult
		if err := json.Unmarshal(line, &sys); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- sys:
		}
	}
	return scanner.Err()
}

func countJSONLLines(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	count := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if len(strings.TrimSpace(scanner.Text())) > 0 {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return count, nil
}
