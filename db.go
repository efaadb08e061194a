// Package sourcetrail writes Sourcetrail-compatible symbol databases. It
// records named program entities, their nesting, typed relationships and
// source spans on behalf of a language indexer; it performs no analysis of
// its own.
//
// A DB is not safe for concurrent use. Indexers run one writer per database
// and issue operations sequentially.
package sourcetrail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/storage"
)

const (
	databaseExt = ".srctrldb"
	projectExt  = ".srctrlprj"

	// storageVersion is the Sourcetrail on-disk format version this library
	// writes.
	storageVersion = "25"

	projectSettingsXML = `<?xml version="1.0" encoding="utf-8"?>
<config>
    <version>0</version>
</config>`
)

// DB is a handle on one Sourcetrail project database. The name cache maps
// serialized hierarchies to node ids so repeated interning of the same
// symbol stays write-free.
type DB struct {
	store     storage.Store
	path      string
	nameCache map[string]int64
}

// New wraps an already-open store. Most callers use Open or Create instead.
func New(store storage.Store, path string) *DB {
	return &DB{
		store:     store,
		path:      path,
		nameCache: make(map[string]int64),
	}
}

// uniformizePath forces the canonical database extension.
func uniformizePath(path string) string {
	if filepath.Ext(path) != databaseExt {
		ext := filepath.Ext(path)
		path = strings.TrimSuffix(path, ext) + databaseExt
	}
	return path
}

// Exists reports whether a database already exists at path (after extension
// normalization).
func Exists(path string) bool {
	_, err := os.Stat(uniformizePath(path))
	return err == nil
}

// Open opens the database at path. When the file is missing, clear=true
// creates a fresh project and clear=false is an error. When the file exists
// and clear is set, all recorded data is removed first.
func Open(ctx context.Context, path string, clear bool) (*DB, error) {
	path = uniformizePath(path)

	if _, err := os.Stat(path); err != nil {
		if !clear {
			return nil, sterrors.IO(err, fmt.Sprintf("%s not found", path))
		}
		return Create(ctx, path)
	}

	store, err := storage.NewSQLiteStore(path, nil)
	if err != nil {
		return nil, err
	}

	db := New(store, path)
	if clear {
		if err := db.Clear(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Create creates a new project database at path, refusing to overwrite an
// existing one. Alongside the database it writes the project sidecar file
// the Sourcetrail GUI opens.
func Create(ctx context.Context, path string) (*DB, error) {
	path = uniformizePath(path)

	if _, err := os.Stat(path); err == nil {
		return nil, sterrors.New(sterrors.KindIO, fmt.Sprintf("%s already exists", path))
	}

	store, err := storage.NewSQLiteStore(path, nil)
	if err != nil {
		return nil, err
	}
	db := New(store, path)

	if err := store.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := store.InsertMeta(ctx, "storage_version", storageVersion); err != nil {
		db.Close()
		return nil, err
	}
	if err := store.InsertMeta(ctx, "project_settings", projectSettingsXML); err != nil {
		db.Close()
		return nil, err
	}

	projectFile := strings.TrimSuffix(path, databaseExt) + projectExt
	if err := os.WriteFile(projectFile, []byte(projectSettingsXML), 0644); err != nil {
		db.Close()
		return nil, sterrors.IO(err, "write project file")
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Store exposes the underlying persistence backend, mainly for inspection
// tooling.
func (db *DB) Store() storage.Store {
	return db.store
}

// Clear removes all recorded data, keeping the project meta rows, and drops
// the name cache.
func (db *DB) Clear(ctx context.Context) error {
	if err := db.store.Clear(ctx); err != nil {
		return err
	}
	db.nameCache = make(map[string]int64)
	return nil
}

// Close closes the underlying store.
func (db *DB) Close() error {
	return db.store.Close()
}
