// Package partsplit splits large files into fixed-size part files with
// optional CRC-32 verification.
//
// For a source "D/name" and chunk size S, Split writes D/name.0, D/name.1, ...
// with every index zero-padded to the digit count of ceil(size/S), so part
// names sort in index order. Concatenating the parts in order reproduces the
// source exactly.
//
// Example usage:
//
//	opts := partsplit.DefaultOptions()
//	opts.ChunkSize = 4 * 1024 * 1024
//	opts.ReferenceDir = "/backups/previous"
//
//	result, err := partsplit.Split("/data/archive.tar", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d parts\n", result.Parts)
package partsplit

import (
	"fmt"
	"time"

	"github.com/vnykmshr/partsplit/internal/checksum"
	"github.com/vnykmshr/partsplit/internal/logging"
	"github.com/vnykmshr/partsplit/internal/metrics"
	"github.com/vnykmshr/partsplit/internal/part"
	"github.com/vnykmshr/partsplit/internal/splitter"
)

// Version is the current version of partsplit.
const Version = "1.0.0"

// DefaultChunkSize is the chunk size used by DefaultOptions.
const DefaultChunkSize = splitter.DefaultChunkSize

// Engine selects the CRC-32 implementation. Both engines produce identical checksums.
type Engine = checksum.Engine

const (
	// EngineBitwise is the table-free, bit-by-bit CRC-32 (default).
	EngineBitwise = checksum.EngineBitwise

	// EngineTable is the table-driven CRC-32.
	EngineTable = checksum.EngineTable
)

// Options configures a split.
type Options struct {
	// ChunkSize is the size of each part in bytes (the last may be shorter).
	// Default: 2048
	ChunkSize int

	// Verify checksums every part after writing it.
	// Default: true
	Verify bool

	// ReferenceDir holds previously produced parts to compare against.
	// Setting it implies Verify. The split stops at the first mismatch.
	// Default: "" (no comparison)
	ReferenceDir string

	// Engine selects the CRC-32 implementation.
	// Default: EngineBitwise
	Engine Engine

	// SyncParts fsyncs every part before closing it.
	// Default: false
	SyncParts bool

	// MinFreeDiskSpace is the free space required next to the source before
	// splitting starts (at least the source size). 0 disables the check.
	// Default: 0
	MinFreeDiskSpace int64

	// Logger for structured logging (nil = no logging)
	Logger Logger

	// MetricsCollector for collecting split metrics (nil = no metrics)
	MetricsCollector MetricsCollector

	// OnPart receives one progress record per part.
	OnPart func(PartResult)
}

// PartResult describes one written part file.
type PartResult = splitter.PartResult

// Result summarizes a completed split.
type Result = splitter.Result

// MetricsCollector defines the interface for recording split metrics.
type MetricsCollector interface {
	RecordPart(size int, duration time.Duration)
	RecordVerify()
	RecordComparison(matched bool)
	RecordRun()
	RecordRunError(kind string)
}

// MetricsSnapshot is a point-in-time view of split metrics.
type MetricsSnapshot = metrics.Snapshot

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector(name string) *metrics.Collector {
	return metrics.NewCollector(name)
}

// GetMetricsSnapshot returns a snapshot of current metrics from a collector.
func GetMetricsSnapshot(collector MetricsCollector) *MetricsSnapshot {
	if c, ok := collector.(*metrics.Collector); ok && c != nil {
		return c.GetSnapshot()
	}
	return nil
}

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, fields ...LogField)
	Info(msg string, fields ...LogField)
	Warn(msg string, fields ...LogField)
	Error(msg string, fields ...LogField)
}

// LogField represents a structured log field.
type LogField struct {
	Key   string
	Value interface{}
}

// DefaultOptions returns the default split configuration.
func DefaultOptions() *Options {
	return &Options{
		ChunkSize: DefaultChunkSize,
		Verify:    true,
		Engine:    EngineBitwise,
	}
}

// Split splits sourcePath into part files next to it.
// If opts is nil, default options are used.
func Split(sourcePath string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	sopts := &splitter.Options{
		ChunkSize:        opts.ChunkSize,
		Verify:           opts.Verify,
		ReferenceDir:     opts.ReferenceDir,
		Engine:           opts.Engine,
		SyncParts:        opts.SyncParts,
		MinFreeDiskSpace: opts.MinFreeDiskSpace,
		Logger:           convertLogger(opts.Logger),
		Metrics:          convertMetrics(opts.MetricsCollector),
		OnPart:           opts.OnPart,
	}

	return splitter.Split(sourcePath, sopts)
}

// PartName returns the name of part index for a source of totalSize bytes.
func PartName(base string, index, chunkSize, totalSize uint64) string {
	return part.Name(base, index, chunkSize, totalSize)
}

// ChunkCount returns the number of parts a file of totalSize bytes splits into.
func ChunkCount(totalSize, chunkSize uint64) uint64 {
	return part.ChunkCount(totalSize, chunkSize)
}

// Checksum computes the CRC-32 (IEEE) of data.
func Checksum(data []byte) uint32 {
	return checksum.Checksum(data)
}

// ChecksumFile computes the CRC-32 of the file at path.
func ChecksumFile(path string) (uint32, error) {
	return checksum.File(path)
}

// FormatChecksum renders a checksum as "0x%08X".
func FormatChecksum(sum uint32) string {
	return checksum.Format(sum)
}

// ParseEngine converts "bitwise" or "table" to an Engine.
func ParseEngine(name string) (Engine, error) {
	return checksum.ParseEngine(name)
}

// PartInfo describes a part file found on disk.
type PartInfo = part.Info

// ListParts returns the part files of base found in dir, sorted by index.
func ListParts(dir, base string) ([]*PartInfo, error) {
	return part.Discover(dir, base)
}

// ValidateParts checks that parts (as returned by ListParts) form one complete
// split with no gaps, duplicates or inconsistent index widths.
func ValidateParts(base string, parts []*PartInfo) error {
	if err := part.ValidateSequence(base, parts); err != nil {
		return fmt.Errorf("partsplit: %w", err)
	}
	return nil
}

// convertMetrics returns nil for both a nil interface and a nil *metrics.Collector,
// so the splitter falls back to its no-op collector.
func convertMetrics(m MetricsCollector) splitter.MetricsCollector {
	if m == nil {
		return nil
	}
	if c, ok := m.(*metrics.Collector); ok && c == nil {
		return nil
	}
	return m
}

func convertLogger(l Logger) logging.Logger {
	if l == nil {
		return logging.NoopLogger{}
	}
	return &loggerAdapter{l: l}
}

// loggerAdapter adapts public Logger to internal logging.Logger
type loggerAdapter struct {
	l Logger
}

func (a *loggerAdapter) Debug(msg string, fields ...logging.Field) {
	a.l.Debug(msg, convertFields(fields)...)
}

func (a *loggerAdapter) Info(msg string, fields ...logging.Field) {
	a.l.Info(msg, convertFields(fields)...)
}

func (a *loggerAdapter) Warn(msg string, fields ...logging.Field) {
	a.l.Warn(msg, convertFields(fields)...)
}

func (a *loggerAdapter) Error(msg string, fields ...logging.Field) {
	a.l.Error(msg, convertFields(fields)...)
}

func convertFields(fields []logging.Field) []LogField {
	result := make([]LogField, len(fields))
	for i, f := range fields {
		result[i] = LogField{Key: f.Key, Value: f.Value}
	}
	return result
}
