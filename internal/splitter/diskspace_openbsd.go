//go:build openbsd

package splitter

import (
	"fmt"
	"syscall"
)

// checkDiskSpace returns ErrInsufficientSpace if dir has fewer than required
// bytes available. OpenBSD names the Statfs fields F_bavail and F_bsize.
func checkDiskSpace(dir string, required int64) error {
	if required <= 0 {
		return nil
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(dir, &stat); err != nil {
		return fmt.Errorf("%w: failed to check disk space in %s: %w", ErrOpen, dir, err)
	}

	available := stat.F_bavail * int64(stat.F_bsize)

	if available < required {
		return fmt.Errorf("%w: %d bytes available in %s, %d bytes required",
			ErrInsufficientSpace, available, dir, required)
	}

	return nil
}
