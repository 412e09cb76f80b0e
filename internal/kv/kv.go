// Package kv provides the key-value backends the transaction list is
// persisted to.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is an opaque byte-valued key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
)

// Backends lists every supported backend.
func Backends() []Backend {
	return []Backend{BackendMemory, BackendFile, BackendBolt, BackendSQLite}
}

// IsValid reports whether b is a known backend.
func (b Backend) IsValid() bool {
	for _, known := range Backends() {
		if b == known {
			return true
		}
	}
	return false
}

// Options selects and locates a backend.
type Options struct {
	Backend Backend
	// Path is a directory for the file backend and the parent directory of
	// the database file for bolt and sqlite. Unused by memory.
	Path string
}

const (
	boltFileName   = "neospend.db"
	sqliteFileName = "neospend.sqlite"
)

// Open creates the Store described by opts.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(opts.Path)
	case BackendBolt:
		return NewBolt(filepath.Join(opts.Path, boltFileName))
	case BackendSQLite:
		return NewSQLite(filepath.Join(opts.Path, sqliteFileName))
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", opts.Backend)
	}
}
