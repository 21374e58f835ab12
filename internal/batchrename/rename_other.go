//go:build !linux

package batchrename

func renameNoReplace(oldPath, newPath string) error {
	return renameChecked(oldPath, newPath)
}
