// Package fs holds the small set of filesystem utilities the KGC and signer
// key stores need: a secure directory, an existence check, and an atomic
// write. Kept separate from the persistence logic itself.
package fs

import (
	"os"
	"path/filepath"
)

const defaultDirectoryPermission = 0700
const rwFilePermission = 0600

// CreateSecureFolder ensures dir exists, creating it with owner-only
// permissions if it doesn't. A directory that already exists is left
// untouched — AtomicWriteFile calls this before writing, so a KGC or
// signer store can be pointed at a path whose parent hasn't been created
// yet without the caller doing it by hand.
func CreateSecureFolder(dir string) error {
	exists, err := Exists(dir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return os.MkdirAll(dir, defaultDirectoryPermission)
}

// Exists returns whether the given file or directory exists.
func Exists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return true, err
}

// AtomicWriteFile writes data to path by first writing to a sibling temp
// file with owner-only permissions, then renaming it into place. Used for
// both the KGC's master-secret file and the signer's key file. The parent
// directory is created via CreateSecureFolder if it doesn't already exist.
func AtomicWriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := CreateSecureFolder(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Chmod(rwFilePermission); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
