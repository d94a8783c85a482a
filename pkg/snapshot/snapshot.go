// Package snapshot archives computed leaderboard runs as zip files so a run
// can be inspected or re-rendered later without recomputation.
package snapshot

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/neulab/globalbench/pkg/core"
)

// Version of the archive layout.
const Version = 1

// Archive is one leaderboard run: the resolved config, the computed views,
// the raw table rows, and any score-over-time series.
type Archive struct {
	Version   int                           `json:"version"`
	Benchmark core.BenchmarkConfig          `json:"benchmark"`
	Board     core.Leaderboard              `json:"board"`
	Table     core.Table                    `json:"table"`
	Series    map[string][]core.SeriesPoint `json:"series,omitempty"`
	CreatedAt time.Time                     `json:"created_at"`
}

type header struct {
	Version   int                  `json:"version"`
	Benchmark core.BenchmarkConfig `json:"benchmark"`
	CreatedAt time.Time            `json:"created_at"`
	Views     []string             `json:"views"`
}

// Write stores an archive under dir and returns the file path.
func Write(dir string, arch Archive) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("snapshot: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if arch.Version == 0 {
		arch.Version = Version
	}
	if arch.CreatedAt.IsZero() {
		arch.CreatedAt = time.Now().UTC()
	}

	path := filepath.Join(dir, buildFileName(arch))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	defer zipWriter.Close()

	hdr := header{
		Version:   arch.Version,
		Benchmark: arch.Benchmark,
		CreatedAt: arch.CreatedAt,
	}
	for _, view := range arch.Board.Views {
		hdr.Views = append(hdr.Views, view.Name)
	}
	if err := writeZipJSON(zipWriter, "header.json", hdr); err != nil {
		return "", err
	}
	if err := writeZipJSON(zipWriter, "board.json", arch.Board); err != nil {
		return "", err
	}
	if err := writeZipJSON(zipWriter, "table.json", arch.Table); err != nil {
		return "", err
	}
	for i, view := range arch.Board.Views {
		name := fmt.Sprintf("views/%d_%s.json", i+1, sanitizeName(view.Name))
		if err := writeZipJSON(zipWriter, name, view); err != nil {
			return "", err
		}
	}
	if err := writeZipJSON(zipWriter, "series.json", arch.Series); err != nil {
		return "", err
	}
	return path, nil
}

// Read loads an archive written by Write.
func Read(path string) (Archive, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return Archive{}, err
	}
	defer r.Close()

	var arch Archive
	var hdr header
	if err := readZipJSON(&r.Reader, "header.json", &hdr); err != nil {
		return Archive{}, err
	}
	arch.Version = hdr.Version
	arch.Benchmark = hdr.Benchmark
	arch.CreatedAt = hdr.CreatedAt
	if err := readZipJSON(&r.Reader, "board.json", &arch.Board); err != nil {
		return Archive{}, err
	}
	if err := readZipJSON(&r.Reader, "table.json", &arch.Table); err != nil {
		return Archive{}, err
	}
	if err := readZipJSON(&r.Reader, "series.json", &arch.Series); err != nil {
		return Archive{}, err
	}
	return arch, nil
}

func buildFileName(arch Archive) string {
	timestamp := arch.CreatedAt.Format("2006-01-02T15-04-05")
	bench := sanitizeName(arch.Benchmark.ID)
	if bench == "" {
		bench = "benchmark"
	}
	return fmt.Sprintf("%s_%s.board", timestamp, bench)
}

func writeZipJSON(writer *zip.Writer, name string, data any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return err
	}

	payload := buf.Bytes()
	size := uint64(len(payload))
	header := &zip.FileHeader{
		Name:               name,
		Method:             zip.Store,
		UncompressedSize64: size,
		CompressedSize64:   size,
		CRC32:              crc32.ChecksumIEEE(payload),
	}
	header.Modified = time.Unix(0, 0)
	header.Flags &^= 0x8 // no data descriptor, so readers can stream

	entry, err := writer.CreateRaw(header)
	if err != nil {
		return err
	}
	_, err = entry.Write(payload)
	return err
}

func readZipJSON(r *zip.Reader, name string, out any) error {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, out)
	}
	return fmt.Errorf("snapshot: %s missing from archive", name)
}

func sanitizeName(input string) string {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			out = append(out, r)
		}
	}
	return string(out)
}
