// Package kv provides the durable key-value stores moodlog persists into.
// Every write replaces the whole value stored under a key.
package kv

import (
	"context"
	"fmt"
)

// Store is a small durable key-value store.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendDiskv, BackendSQLite, BackendMemory}
}

// Options selects and configures a backend for Open.
type Options struct {
	Backend string
	// Path is a directory for diskv and a database file for sqlite.
	Path string
	// SQLite only.
	WAL  bool
	Sync string
}

// Open returns the Store described by opts.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendDiskv, "":
		return NewDiskvStore(opts.Path)
	case BackendSQLite:
		return OpenSQLiteStore(opts.Path, opts.WAL, opts.Sync)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected one of %v)", opts.Backend, Backends())
	}
}
