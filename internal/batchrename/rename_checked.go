package batchrename

import (
	"errors"
	"io/fs"
	"os"
)

// renameChecked refuses to replace an existing target before calling
// os.Rename, which would otherwise replace an empty directory.
func renameChecked(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(oldPath, newPath)
}
