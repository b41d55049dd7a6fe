package checksum

import (
	"fmt"
	"os"
	"strings"

	kcrc32 "github.com/klauspost/crc32"
)

// Engine selects the CRC-32 implementation used to checksum part files.
// Both engines produce identical values.
type Engine int

const (
	// EngineBitwise is the table-free, bit-by-bit implementation (default).
	EngineBitwise Engine = iota

	// EngineTable uses the slicing-by-8 IEEE table implementation.
	EngineTable
)

// String returns the engine name as accepted by ParseEngine.
func (e Engine) String() string {
	switch e {
	case EngineBitwise:
		return "bitwise"
	case EngineTable:
		return "table"
	default:
		return "unknown"
	}
}

// ParseEngine converts a name ("bitwise" or "table") to an Engine.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bitwise":
		return EngineBitwise, nil
	case "table":
		return EngineTable, nil
	default:
		return EngineBitwise, fmt.Errorf("unknown checksum engine: %q", name)
	}
}

// Sum computes the CRC-32 of data with this engine.
func (e Engine) Sum(data []byte) uint32 {
	if e == EngineTable {
		return kcrc32.ChecksumIEEE(data)
	}
	return Checksum(data)
}

// File reads the whole file at path into memory and returns its CRC-32.
func (e Engine) File(path string) (uint32, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is user-provided
	if err != nil {
		return 0, fmt.Errorf("failed to read %s for checksum: %w", path, err)
	}
	return e.Sum(data), nil
}

// File returns the CRC-32 of the file at path using the bitwise engine.
func File(path string) (uint32, error) {
	return EngineBitwise.File(path)
}
