package splitter

import (
	"errors"
	"fmt"

	"github.com/vnykmshr/partsplit/internal/checksum"
)

// Errors returned by Split. Every one of them is fatal for the run.
var (
	// ErrConfig indicates invalid split options. Returned before any I/O.
	ErrConfig = errors.New("partsplit: invalid configuration")

	// ErrInvalidChunkSize indicates a chunk size that is not positive.
	ErrInvalidChunkSize = fmt.Errorf("%w: chunk size must be positive", ErrConfig)

	// ErrOpen indicates the source or a reference part could not be opened.
	ErrOpen = errors.New("partsplit: open failed")

	// ErrRead indicates an I/O error while reading the source or a written part.
	ErrRead = errors.New("partsplit: read failed")

	// ErrWrite indicates a part file could not be created or written.
	ErrWrite = errors.New("partsplit: write failed")

	// ErrInsufficientSpace indicates the output directory lacks free space.
	ErrInsufficientSpace = errors.New("partsplit: insufficient disk space")

	// ErrMismatch indicates a part's checksum differs from its reference.
	ErrMismatch = errors.New("partsplit: checksum mismatch")
)

// MismatchError reports a part whose checksum differs from the reference
// part of the same name. It matches ErrMismatch with errors.Is.
type MismatchError struct {
	Index         uint64
	PartPath      string
	PartCRC       uint32
	ReferencePath string
	ReferenceCRC  uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v at part %d: %s crc = %s; %s crc = %s",
		ErrMismatch, e.Index,
		e.PartPath, checksum.Format(e.PartCRC),
		e.ReferencePath, checksum.Format(e.ReferenceCRC))
}

// Is reports whether target is ErrMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Classify maps a Split error to a short kind used in logs and metrics:
// "config", "open", "read", "write", "space", "mismatch" or "unknown".
func Classify(err error) string {
	switch {
	case err == nil:
		return "unknown"
	case errors.Is(err, ErrConfig):
		return "config"
	case errors.Is(err, ErrMismatch):
		return "mismatch"
	case errors.Is(err, ErrInsufficientSpace):
		return "space"
	case errors.Is(err, ErrOpen):
		return "open"
	case errors.Is(err, ErrRead):
		return "read"
	case errors.Is(err, ErrWrite):
		return "write"
	default:
		return "unknown"
	}
}
