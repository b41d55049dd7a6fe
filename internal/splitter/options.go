package splitter

import (
	"fmt"
	"time"

	"github.com/vnykmshr/partsplit/internal/checksum"
	"github.com/vnykmshr/partsplit/internal/logging"
)

// DefaultChunkSize is the chunk size used when none is configured.
const DefaultChunkSize = 2048

// Options configures a split.
type Options struct {
	// ChunkSize is the size of every part except possibly the last, in bytes.
	// Must be positive.
	ChunkSize int

	// Verify checksums each part by re-reading it from disk after writing.
	// Always on when ReferenceDir is set.
	Verify bool

	// ReferenceDir, if set, holds previously produced parts. Each new part is
	// compared against the file of the same name there and the split stops
	// at the first mismatch.
	ReferenceDir string

	// Engine selects the CRC-32 implementation.
	Engine checksum.Engine

	// SyncParts fsyncs every part before closing it.
	SyncParts bool

	// MinFreeDiskSpace is the minimum free space in bytes required in the
	// output directory before the split starts. The source size is required
	// regardless. Set to 0 to skip the check.
	MinFreeDiskSpace int64

	// Logger for structured logging (nil = no logging)
	Logger logging.Logger

	// Metrics for collecting split metrics (nil = no metrics)
	Metrics MetricsCollector

	// OnPart is called once per part after it has been written and verified.
	OnPart func(PartResult)
}

// MetricsCollector defines the interface for recording split metrics.
type MetricsCollector interface {
	RecordPart(size int, duration time.Duration)
	RecordVerify()
	RecordComparison(matched bool)
	RecordRun()
	RecordRunError(kind string)
}

// DefaultOptions returns the default split options: 2048-byte chunks with
// verification enabled.
func DefaultOptions() *Options {
	return &Options{
		ChunkSize: DefaultChunkSize,
		Verify:    true,
		Engine:    checksum.EngineBitwise,
	}
}

// Validate checks the options without touching the filesystem.
func (o *Options) Validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, o.ChunkSize)
	}

	if o.Engine != checksum.EngineBitwise && o.Engine != checksum.EngineTable {
		return fmt.Errorf("%w: unknown checksum engine %d", ErrConfig, o.Engine)
	}

	if o.MinFreeDiskSpace < 0 {
		return fmt.Errorf("%w: min free disk space cannot be negative", ErrConfig)
	}

	return nil
}

// verifying reports whether parts are checksummed after writing.
func (o *Options) verifying() bool {
	return o.Verify || o.ReferenceDir != ""
}
