// Package fs provides the filesystem abstraction used by the file-backed store.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the store needs
//   - [Real]: production implementation using [os] and atomic renames
//   - [Afero]: implementation over an [afero.Fs], in-memory by default
//
// Example usage:
//
//	fsys := fs.NewReal()
//	if err := fsys.MkdirAll(".agenda", 0o755); err != nil {
//	    return err
//	}
//
//	err := fsys.WriteFileAtomic(".agenda/agenda_xml_v1.xml", data, 0o644)
package fs

import (
	"os"
)

// FS defines filesystem operations for reading and atomically replacing files.
//
// Two implementations are provided:
//   - [Real]: production use, wraps [os] package
//   - [Afero]: testing use, wraps an [afero.Fs]
//
// All methods mirror their [os] package equivalents and return errors that
// satisfy [errors.Is] with [os.ErrNotExist] when a path is missing.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never observe a partial write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}
