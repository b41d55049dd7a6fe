//go:build windows

package splitter

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	kernel32         = syscall.NewLazyDLL("kernel32.dll")
	getDiskFreeSpace = kernel32.NewProc("GetDiskFreeSpaceExW")
)

// checkDiskSpace returns ErrInsufficientSpace if dir has fewer than required
// bytes available. Uses GetDiskFreeSpaceExW.
func checkDiskSpace(dir string, required int64) error {
	if required <= 0 {
		return nil
	}

	dirUTF16, err := syscall.UTF16PtrFromString(dir)
	if err != nil {
		return fmt.Errorf("%w: failed to convert path %s: %w", ErrOpen, dir, err)
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64

	ret, _, err := getDiskFreeSpace.Call(
		uintptr(unsafe.Pointer(dirUTF16)),
		uintptr(unsafe.Pointer(&freeBytesAvailable)),
		uintptr(unsafe.Pointer(&totalBytes)),
		uintptr(unsafe.Pointer(&totalFreeBytes)),
	)
	if ret == 0 {
		return fmt.Errorf("%w: failed to check disk space in %s: %w", ErrOpen, dir, err)
	}

	available := int64(freeBytesAvailable) //nolint:gosec // G115: free space fits in int64

	if available < required {
		return fmt.Errorf("%w: %d bytes available in %s, %d bytes required",
			ErrInsufficientSpace, available, dir, required)
	}

	return nil
}
