package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/agenda/internal/fs"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644

	// FileExt is appended to keys to form file names.
	FileExt = ".xml"
)

// File is a [Store] that keeps each key in its own file under a directory.
// Writes go through [fs.FS.WriteFileAtomic], so a crash mid-write leaves the
// previous value in place.
type File struct {
	fs  fs.FS
	dir string
}

// NewFile returns a [File] store rooted at dir. The directory is created on
// the first Set, so reading from a fresh location does not touch disk.
func NewFile(fsys fs.FS, dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file store: directory is empty")
	}

	return &File{fs: fsys, dir: filepath.Clean(dir)}, nil
}

// Dir returns the directory holding the store's files.
func (f *File) Dir() string {
	return f.dir
}

// Path returns the file backing key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+FileExt)
}

func (f *File) Get(key string) ([]byte, error) {
	err := ValidateKey(key)
	if err != nil {
		return nil, err
	}

	data, err := f.fs.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return nil, fmt.Errorf("file store: read %s: %w", key, err)
	}

	return data, nil
}

func (f *File) Set(key string, value []byte) error {
	err := ValidateKey(key)
	if err != nil {
		return err
	}

	err = f.fs.MkdirAll(f.dir, dirPerms)
	if err != nil {
		return fmt.Errorf("file store: create directory: %w", err)
	}

	err = f.fs.WriteFileAtomic(f.Path(key), value, filePerms)
	if err != nil {
		return fmt.Errorf("file store: write %s: %w", key, err)
	}

	return nil
}

func (f *File) Close() error {
	return nil
}

var _ Store = (*File)(nil)
