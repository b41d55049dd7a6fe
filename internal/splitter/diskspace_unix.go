//go:build linux || darwin || freebsd || dragonfly

package splitter

import (
	"fmt"
	"syscall"
)

// checkDiskSpace returns ErrInsufficientSpace if dir has fewer than required
// bytes available. Uses Statfs.
func checkDiskSpace(dir string, required int64) error {
	if required <= 0 {
		return nil
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(dir, &stat); err != nil {
		return fmt.Errorf("%w: failed to check disk space in %s: %w", ErrOpen, dir, err)
	}

	available := int64(uint64(stat.Bavail) * uint64(stat.Bsize)) //nolint:gosec,unconvert // G115: Bsize width differs per platform

	if available < required {
		return fmt.Errorf("%w: %d bytes available in %s, %d bytes required",
			ErrInsufficientSpace, available, dir, required)
	}

	return nil
}
