// Package splitter splits a file into fixed-size part files and optionally
// verifies each part against its CRC-32 and a reference directory.
//
// A split is single-threaded and synchronous: one chunk is read, written,
// verified and compared before the next read begins. Every error is fatal;
// there is no resume, and a failed run must be restarted from scratch.
package splitter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vnykmshr/partsplit/internal/checksum"
	"github.com/vnykmshr/partsplit/internal/logging"
	"github.com/vnykmshr/partsplit/internal/metrics"
	"github.com/vnykmshr/partsplit/internal/part"
)

// PartResult describes one written part file.
type PartResult struct {
	// Index is the zero-based part index
	Index uint64

	// Name is the part file name, Path its location next to the source
	Name string
	Path string

	// Size is the number of bytes written
	Size int

	// CRC32 is the checksum of the part as re-read from disk (valid if Verified)
	CRC32    uint32
	Verified bool

	// ReferencePath is the compared reference part ("" if none)
	ReferencePath string
}

// Result summarizes a completed split.
type Result struct {
	// RunID uniquely identifies this split in logs
	RunID string

	Source     string
	SourceSize uint64
	ChunkSize  int

	// Parts is the number of part files written
	Parts uint64

	// BytesWritten is the sum of all part sizes; equals SourceSize on success
	BytesWritten uint64

	Verified bool
	Compared bool

	Duration time.Duration
}

// partChecksum re-reads a written part. Replaced in tests to simulate a
// part that cannot be read back.
var partChecksum = checksum.Engine.File

// splitter holds the state of one Split call.
type splitter struct {
	opts    *Options
	runID   string
	logger  logging.Logger
	metrics MetricsCollector
	engine  checksum.Engine

	source string
	dir    string
	base   string
	size   uint64
	chunks uint64
}

// Split reads sourcePath in ChunkSize windows and writes each window to
// "<dir>/<name>.<index>" next to the source. A nil opts uses DefaultOptions.
func Split(sourcePath string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	s := &splitter{
		opts:    opts,
		runID:   uuid.NewString(),
		logger:  opts.Logger,
		metrics: opts.Metrics,
		engine:  opts.Engine,
		source:  sourcePath,
		dir:     filepath.Dir(sourcePath),
		base:    filepath.Base(sourcePath),
	}
	if s.logger == nil {
		s.logger = logging.NoopLogger{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NoopCollector{}
	}

	result, err := s.run()
	if err != nil {
		kind := Classify(err)
		s.metrics.RecordRunError(kind)
		s.logger.Error("split failed",
			logging.F("run_id", s.runID),
			logging.F("code", kind),
			logging.F("error", err.Error()),
		)
		return nil, err
	}

	s.metrics.RecordRun()
	return result, nil
}

func (s *splitter) run() (*Result, error) {
	start := time.Now()

	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.source) //nolint:gosec // G304: Path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: source: %w", ErrOpen, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: source: %w", ErrOpen, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: source %s is a directory", ErrOpen, s.source)
	}

	s.size = uint64(info.Size()) //nolint:gosec // G115: file sizes are non-negative
	s.chunks = part.ChunkCount(s.size, uint64(s.opts.ChunkSize))

	required := s.opts.MinFreeDiskSpace
	if s.opts.MinFreeDiskSpace > 0 && info.Size() > required {
		required = info.Size()
	}
	if err := checkDiskSpace(s.dir, required); err != nil {
		return nil, err
	}

	s.logger.Info("splitting file",
		logging.F("run_id", s.runID),
		logging.F("source", s.source),
		logging.F("size", s.size),
		logging.F("chunk_size", s.opts.ChunkSize),
		logging.F("chunks", s.chunks),
		logging.F("verify", s.opts.verifying()),
		logging.F("reference_dir", s.opts.ReferenceDir),
	)

	if s.opts.ReferenceDir != "" && filepath.Clean(s.opts.ReferenceDir) == filepath.Clean(s.dir) {
		s.logger.Warn("reference directory is the output directory; every comparison will match",
			logging.F("run_id", s.runID),
			logging.F("reference_dir", s.opts.ReferenceDir),
		)
	}

	result := &Result{
		RunID:      s.runID,
		Source:     s.source,
		SourceSize: s.size,
		ChunkSize:  s.opts.ChunkSize,
		Verified:   s.opts.verifying(),
		Compared:   s.opts.ReferenceDir != "",
	}

	// The buffer is reused for every chunk and never escapes this loop. It
	// is capped one byte past the source size so an oversized ChunkSize
	// costs nothing, and the extra byte still exposes a source that grew.
	bufSize := uint64(s.opts.ChunkSize)
	if s.size < bufSize {
		bufSize = s.size + 1
	}
	buf := make([]byte, bufSize)

	for index := uint64(0); ; index++ {
		n, err := io.ReadFull(file, buf)
		if n == 0 {
			if err == nil || errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: source %s at part %d: %w", ErrRead, s.source, index, err)
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: source %s at part %d: %w", ErrRead, s.source, index, err)
		}
		if index >= s.chunks {
			return nil, fmt.Errorf("%w: source %s grew during split (expected %d parts)", ErrRead, s.source, s.chunks)
		}

		if err := s.processChunk(index, buf[:n]); err != nil {
			return nil, err
		}

		result.Parts++
		result.BytesWritten += uint64(n)
	}

	if result.Parts != s.chunks {
		s.logger.Warn("source shrank during split",
			logging.F("run_id", s.runID),
			logging.F("expected_parts", s.chunks),
			logging.F("parts", result.Parts),
		)
	}

	result.Duration = time.Since(start)

	s.logger.Info("split complete",
		logging.F("run_id", s.runID),
		logging.F("parts", result.Parts),
		logging.F("bytes", result.BytesWritten),
		logging.F("duration", result.Duration),
	)

	return result, nil
}

// processChunk writes one chunk, verifies it and compares it with its
// reference, then emits the progress record.
func (s *splitter) processChunk(index uint64, data []byte) error {
	t0 := time.Now()

	name := part.Name(s.base, index, uint64(s.opts.ChunkSize), s.size)
	pr := PartResult{
		Index: index,
		Name:  name,
		Path:  filepath.Join(s.dir, name),
		Size:  len(data),
	}

	if err := part.Create(pr.Path, data, s.opts.SyncParts); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if s.opts.verifying() {
		// Re-read from disk so the write path is verified, not just the buffer.
		crc, err := partChecksum(s.engine, pr.Path)
		if err != nil {
			return fmt.Errorf("%w: part %d: %w", ErrRead, index, err)
		}
		pr.CRC32 = crc
		pr.Verified = true
		s.metrics.RecordVerify()
	}

	if s.opts.ReferenceDir != "" {
		pr.ReferencePath = filepath.Join(s.opts.ReferenceDir, name)

		refCRC, err := s.engine.File(pr.ReferencePath)
		if err != nil {
			return fmt.Errorf("%w: reference part %d: %w", ErrOpen, index, err)
		}

		matched := refCRC == pr.CRC32
		s.metrics.RecordComparison(matched)
		if !matched {
			return &MismatchError{
				Index:         index,
				PartPath:      pr.Path,
				PartCRC:       pr.CRC32,
				ReferencePath: pr.ReferencePath,
				ReferenceCRC:  refCRC,
			}
		}
	}

	s.metrics.RecordPart(pr.Size, time.Since(t0))

	fields := []logging.Field{
		logging.F("run_id", s.runID),
		logging.F("index", index),
		logging.F("path", pr.Path),
		logging.F("size", pr.Size),
	}
	if pr.Verified {
		fields = append(fields, logging.F("crc32", checksum.Format(pr.CRC32)))
	}
	s.logger.Info("processed chunk", fields...)

	if s.opts.OnPart != nil {
		s.opts.OnPart(pr)
	}

	return nil
}
