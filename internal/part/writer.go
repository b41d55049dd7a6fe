package part

import (
	"fmt"
	"os"
)

// Create writes data to a part file at path, truncating any existing file.
// When sync is set the file is fsynced before it is closed.
func Create(path string, data []byte, sync bool) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644) //nolint:gosec // G304: Path is derived from user input
	if err != nil {
		return fmt.Errorf("failed to create part file %s: %w", path, err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write part file %s: %w", path, err)
	}

	if sync {
		if err := file.Sync(); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to sync part file %s: %w", path, err)
		}
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close part file %s: %w", path, err)
	}

	return nil
}
