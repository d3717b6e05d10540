package fs

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Afero implements [FS] on top of an [afero.Fs].
//
// Tests use [NewMem] to run the file store without touching disk.
type Afero struct {
	fs afero.Fs
}

// NewAfero wraps fsys.
func NewAfero(fsys afero.Fs) *Afero {
	return &Afero{fs: fsys}
}

// NewMem returns an [Afero] backed by a fresh [afero.MemMapFs].
func NewMem() *Afero {
	return NewAfero(afero.NewMemMapFs())
}

func (a *Afero) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

// WriteFileAtomic writes data to a sibling temp file and renames it over path.
// The temp file is removed if any step fails.
func (a *Afero) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := afero.TempFile(a.fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = a.fs.Chmod(tmpName, perm)
	}

	if err == nil {
		err = a.fs.Rename(tmpName, path)
	}

	if err != nil {
		_ = a.fs.Remove(tmpName)

		return err
	}

	return nil
}

func (a *Afero) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *Afero) Exists(path string) (bool, error) {
	return afero.Exists(a.fs, path)
}

var _ FS = (*Afero)(nil)
