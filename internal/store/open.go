package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/calvinalkan/agenda/internal/fs"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every backend name accepted by [Open].
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Options selects and locates a backend.
type Options struct {
	Backend string // one of [Backends]
	Dir     string // data directory for file and sqlite backends
	FS      fs.FS  // filesystem for the file backend; nil means [fs.NewReal]
}

// Open constructs the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		fsys := opts.FS
		if fsys == nil {
			fsys = fs.NewReal()
		}

		return NewFile(fsys, opts.Dir)

	case BackendSQLite:
		if opts.Dir == "" {
			return nil, errors.New("open sqlite: data directory is empty")
		}

		fsys := opts.FS
		if fsys == nil {
			fsys = fs.NewReal()
		}

		err := fsys.MkdirAll(opts.Dir, dirPerms)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: create directory: %w", err)
		}

		return OpenSQLite(ctx, filepath.Join(opts.Dir, SQLiteFileName))

	case BackendMemory:
		return NewMemory(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
	}
}
