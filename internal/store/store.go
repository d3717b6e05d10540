// Package store persists opaque byte values under string keys.
//
// A [Store] is the persistence boundary of the address book: one key maps to
// one serialized document, read once at startup and overwritten after every
// mutation. Three backends are provided:
//   - [File]: one file per key in a directory, replaced atomically
//   - [SQLite]: one row per key in a single-table SQLite database
//   - [Memory]: a process-local map
//
// Use [Open] to construct the backend named in configuration.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// Store is a persistent key-value byte store.
//
// Implementations are used from a single goroutine and are not required to be
// safe for concurrent use. Set must be all-or-nothing: after a failed Set the
// previous value (or absence) is still what Get returns.
type Store interface {
	// Get returns the value stored under key.
	// Returns an error matching [ErrNotFound] when the key has never been set.
	Get(key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error

	// Close releases resources held by the store.
	Close() error
}

// Errors returned by stores.
var (
	ErrNotFound       = errors.New("key not found")
	ErrInvalidKey     = errors.New("invalid key")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrClosed         = errors.New("store is closed")
)

// ValidateKey rejects keys that cannot be stored by every backend.
// Keys must be non-empty and must not contain path separators or NUL bytes,
// since the file backend uses the key as a file name.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}

	if key == "." || key == ".." || strings.ContainsAny(key, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return nil
}
