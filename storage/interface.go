// Package storage persists the symbol graph. The Store interface is the
// capability contract the recording layer consumes; SQLiteStore implements it
// over the Sourcetrail on-disk format.
package storage

import (
	"context"
	"errors"

	"github.com/xorpse/sourcetrail/types"
)

// ErrNotFound is returned by Get* methods when no row matches.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations the recording layer depends on.
type Store interface {
	// NewElement allocates a fresh entity id. Ids are monotonic and never
	// reused.
	NewElement(ctx context.Context) (int64, error)

	// Node operations
	InsertNode(ctx context.Context, node types.Node) error
	GetNode(ctx context.Context, id int64) (types.Node, error)
	GetNodeBySerializedName(ctx context.Context, name string) (types.Node, error)
	UpdateNode(ctx context.Context, node types.Node) error

	// Symbol operations
	InsertSymbol(ctx context.Context, sym types.Symbol) error
	GetSymbol(ctx context.Context, id int64) (types.Symbol, error)
	UpdateSymbol(ctx context.Context, sym types.Symbol) error

	// Edge operations
	InsertEdge(ctx context.Context, edge types.Edge) error

	// Source location operations. InsertSourceLocation returns the id
	// allocated for the location row.
	InsertSourceLocation(ctx context.Context, loc types.SourceLocation) (int64, error)
	InsertOccurrence(ctx context.Context, occ types.Occurrence) error

	// File operations
	InsertFile(ctx context.Context, file types.File) error
	GetFile(ctx context.Context, id int64) (types.File, error)
	UpdateFile(ctx context.Context, file types.File) error
	InsertFileContent(ctx context.Context, content types.FileContent) error

	// Local symbol operations
	InsertLocalSymbol(ctx context.Context, sym types.LocalSymbol) error
	GetLocalSymbolByName(ctx context.Context, name string) (types.LocalSymbol, error)

	// Auxiliary component operations
	InsertElementComponent(ctx context.Context, comp types.ElementComponent) error
	InsertComponentAccess(ctx context.Context, access types.ComponentAccess) error

	// Error operations
	InsertError(ctx context.Context, e types.Error) error

	// Meta operations
	InsertMeta(ctx context.Context, key, value string) error
	ListMeta(ctx context.Context) ([]types.Meta, error)

	// Schema lifecycle. CreateTables and DropTables are idempotent. Clear
	// removes all graph rows but keeps project meta.
	CreateTables(ctx context.Context) error
	DropTables(ctx context.Context) error
	Clear(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
