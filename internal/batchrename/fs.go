package batchrename

import (
	"errors"
	"io/fs"
	"os"
)

// FileSystem is the filesystem surface the executor needs.
type FileSystem interface {
	Exists(path string) (bool, error)
	Rename(oldPath, newPath string) error
}

// OSFileSystem renames folders on the local filesystem.
type OSFileSystem struct{}

// Exists reports whether path exists without following a final symlink.
func (OSFileSystem) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Rename moves oldPath to newPath in one step and fails with fs.ErrExist
// when newPath already exists.
func (OSFileSystem) Rename(oldPath, newPath string) error {
	return renameNoReplace(oldPath, newPath)
}
