package splitter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vnykmshr/partsplit/internal/part"
)

// makeData returns size bytes of a deterministic, non-repeating-per-chunk pattern.
func makeData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*31 + i>>8 + 7)
	}
	return data
}

// writeSource creates a source file named name in a fresh temp dir.
func writeSource(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

// splitOK runs Split and fails the test on error.
func splitOK(t *testing.T, source string, opts *Options) (*Result, []PartResult) {
	t.Helper()

	var parts []PartResult
	opts.OnPart = func(pr PartResult) { parts = append(parts, pr) }

	result, err := Split(source, opts)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	return result, parts
}

// joinParts concatenates the discovered parts of source in index order.
func joinParts(t *testing.T, source string) []byte {
	t.Helper()

	infos, err := part.Discover(filepath.Dir(source), filepath.Base(source))
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var buf bytes.Buffer
	for _, info := range infos {
		data, err := os.ReadFile(info.Path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", info.Path, err)
		}
		buf.Write(data)
	}
	return buf.Bytes()
}

// copyParts copies every part of source into dir, returning the copied paths by index.
func copyParts(t *testing.T, source, dir string) []string {
	t.Helper()

	infos, err := part.Discover(filepath.Dir(source), filepath.Base(source))
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	paths := make([]string, len(infos))
	for i, info := range infos {
		data, err := os.ReadFile(info.Path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", info.Path, err)
		}
		paths[i] = filepath.Join(dir, info.Name)
		if err := os.WriteFile(paths[i], data, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", paths[i], err)
		}
	}
	return paths
}
