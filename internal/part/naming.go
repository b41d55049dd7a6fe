// Package part provides part file naming, creation and discovery for partsplit.
//
// A source file "name" split into K chunks produces part files:
//   - name.0, name.1, ... name.9              (K <= 9)
//   - name.00, name.01, ... name.41           (10 <= K <= 99)
//   - name.0000, name.0001, ... name.1023     (1000 <= K <= 9999)
//
// The index is zero-padded to the number of decimal digits in K, so
// lexicographic sorting of part names matches numeric index order for any
// file size.
package part

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ChunkCount returns the number of chunks a file of totalSize bytes splits
// into with the given chunk size: ceil(totalSize / chunkSize).
// An empty file yields 0 chunks. A chunkSize of 0 also yields 0.
func ChunkCount(totalSize, chunkSize uint64) uint64 {
	if chunkSize == 0 {
		return 0
	}

	q, r := totalSize/chunkSize, totalSize%chunkSize
	if r > 0 {
		q++
	}
	return q
}

// DigitCount returns the number of decimal digits in n.
// DigitCount(0) is 0.
func DigitCount(n uint64) int {
	count := 0
	for n > 0 {
		count++
		n /= 10
	}
	return count
}

// Width returns the zero-padding width of part indices for a file of
// totalSize bytes.
func Width(chunkSize, totalSize uint64) int {
	return DigitCount(ChunkCount(totalSize, chunkSize))
}

// Name returns the part file name for the given zero-based index:
// "{base}.{index}" with the index padded to Width(chunkSize, totalSize).
func Name(base string, index, chunkSize, totalSize uint64) string {
	return fmt.Sprintf("%s.%0*d", base, Width(chunkSize, totalSize), index)
}

// Parse extracts the part index from a part file name produced for base.
// Returns an error if the name doesn't belong to base or the suffix is not
// a decimal index.
func Parse(base, filename string) (uint64, error) {
	prefix := base + "."
	if !strings.HasPrefix(filename, prefix) {
		return 0, fmt.Errorf("invalid part filename: %s (missing %s prefix)", filename, prefix)
	}

	suffix := strings.TrimPrefix(filename, prefix)
	if suffix == "" || strings.TrimLeft(suffix, "0123456789") != "" {
		return 0, fmt.Errorf("invalid part filename: %s (invalid index)", filename)
	}

	index, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid part filename: %s (invalid index)", filename)
	}

	return index, nil
}

// Info holds information about a discovered part file.
type Info struct {
	// Index is the zero-based part index
	Index uint64

	// Name is the part file name
	Name string

	// Path is the full path to the part file
	Path string

	// Size is the part file size in bytes
	Size int64
}

// width returns the padding width encoded in the part name.
func (i *Info) width(base string) int {
	return len(i.Name) - len(base) - 1
}

// Discover finds all part files of base in dir and returns them sorted by index.
// Files that don't parse as parts of base are skipped.
func Discover(dir, base string) ([]*Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var parts []*Info

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		index, err := Parse(base, entry.Name())
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		parts = append(parts, &Info{
			Index: index,
			Name:  entry.Name(),
			Path:  filepath.Join(dir, entry.Name()),
			Size:  info.Size(),
		})
	}

	sort.Slice(parts, func(i, j int) bool {
		if parts[i].Index != parts[j].Index {
			return parts[i].Index < parts[j].Index
		}
		return parts[i].Name < parts[j].Name
	})

	return parts, nil
}

// ValidateSequence checks that discovered parts form one complete split:
// indices 0..n-1 with no duplicates or gaps, all padded to DigitCount(n).
// parts must be sorted as returned by Discover.
func ValidateSequence(base string, parts []*Info) error {
	if len(parts) == 0 {
		return nil
	}

	want := DigitCount(uint64(len(parts)))

	for i, p := range parts {
		if i > 0 && p.Index == parts[i-1].Index {
			return fmt.Errorf("duplicate part with index %d (%s, %s)", p.Index, parts[i-1].Name, p.Name)
		}
		if p.Index != uint64(i) {
			return fmt.Errorf("missing part with index %d", i)
		}
		if w := p.width(base); w != want {
			return fmt.Errorf("part %s has index width %d, want %d", p.Name, w, want)
		}
	}

	return nil
}
