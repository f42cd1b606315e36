// Package transaction provides all-or-nothing file writes: work happens at a
// temporary path which is promoted to the final path only on full success.
package transaction

import (
	"fmt"
	"os"
	"path/filepath"
)

// WithFile runs fn with a temporary path in the final path's directory. When
// fn succeeds and produced the temporary file, it is renamed to finalPath.
// On any failure the temporary file is removed and finalPath is left
// untouched.
func WithFile(finalPath string, fn func(txPath string) error) error {
	dir := filepath.Dir(finalPath)
	tmp, err := os.CreateTemp(dir, filepath.Base(finalPath)+".tx*")
	if err != nil {
		return fmt.Errorf("create transactional file: %w", err)
	}
	txPath := tmp.Name()
	tmp.Close()
	defer os.Remove(txPath)

	if err := fn(txPath); err != nil {
		return err
	}
	info, err := os.Stat(txPath)
	if err != nil {
		return fmt.Errorf("transactional output missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("transactional output %s is empty", txPath)
	}
	if err := os.Rename(txPath, finalPath); err != nil {
		return fmt.Errorf("promote transactional file: %w", err)
	}
	return nil
}
