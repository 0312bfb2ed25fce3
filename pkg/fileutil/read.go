package fileutil

import (
	"io"
	"io/fs"
	"syscall"

	"github.com/spf13/afero"

	"github.com/thoreinstein/rig/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// This prevents memory exhaustion from maliciously large files.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file from fsys up to MaxFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if the size is already known to be too large
	info, err := f.Stat()
	if err == nil {
		if info.Size() > MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	r := io.LimitReader(f, MaxFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// Exists reports whether path exists in fsys.
// A missing path is not an error; other stat failures are returned.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if isNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "checking %s", path)
}

// IsDir reports whether path exists in fsys and is a directory.
func IsDir(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "checking %s", path)
	}
	return info.IsDir(), nil
}

// IsFile reports whether path exists in fsys and is not a directory.
func IsFile(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "checking %s", path)
	}
	return !info.IsDir(), nil
}

// isNotExist reports whether a stat error means the path is absent. A parent
// component that is a regular file (ENOTDIR) counts as absent too.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
