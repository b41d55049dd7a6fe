package partsplit

import "github.com/vnykmshr/partsplit/internal/splitter"

// Errors returned by Split. Use errors.Is to test for them; all are fatal.
var (
	// ErrConfig indicates invalid options, detected before any file I/O.
	ErrConfig = splitter.ErrConfig

	// ErrInvalidChunkSize indicates a chunk size that is not positive.
	ErrInvalidChunkSize = splitter.ErrInvalidChunkSize

	// ErrOpen indicates the source or a reference part could not be opened.
	ErrOpen = splitter.ErrOpen

	// ErrRead indicates an I/O error while reading.
	ErrRead = splitter.ErrRead

	// ErrWrite indicates a part file could not be created or written.
	ErrWrite = splitter.ErrWrite

	// ErrInsufficientSpace indicates the output directory lacks free space.
	ErrInsufficientSpace = splitter.ErrInsufficientSpace

	// ErrMismatch indicates a part differs from its reference.
	ErrMismatch = splitter.ErrMismatch
)

// MismatchError carries both paths and checksums of a failed comparison.
type MismatchError = splitter.MismatchError

// ErrorKind classifies a Split error as "config", "open", "read", "write",
// "space", "mismatch" or "unknown".
func ErrorKind(err error) string {
	return splitter.Classify(err)
}
