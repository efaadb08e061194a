// Package types defines the entities persisted in a Sourcetrail database and
// the serialized name format used for node identity.
package types

import (
	"time"

	"github.com/xorpse/sourcetrail/sterrors"
)

// Element is the root identity row every other entity hangs off.
type Element struct {
	ID int64 `db:"id"`
}

// ElementComponent attaches auxiliary data to an element, such as the
// ambiguity marker on a reference edge.
type ElementComponent struct {
	ID        int64                `db:"id"`
	ElementID int64                `db:"element_id"`
	Kind      ElementComponentKind `db:"type"`
	Data      string               `db:"data"`
}

// Edge is a typed relationship between two nodes.
type Edge struct {
	ID       int64    `db:"id"`
	Kind     EdgeKind `db:"type"`
	SourceID int64    `db:"source_node_id"`
	TargetID int64    `db:"target_node_id"`
}

// Node is a named entity in the symbol graph. SerializedName is the encoded
// form of its full NameHierarchy and is unique per node.
type Node struct {
	ID             int64    `db:"id"`
	Kind           NodeKind `db:"type"`
	SerializedName string   `db:"serialized_name"`
}

// Symbol tracks how a node's definition was recorded.
type Symbol struct {
	ID             int64          `db:"id"`
	DefinitionKind DefinitionKind `db:"definition_kind"`
}

// File describes an indexed source file. It shares its id with the node
// interned for the file's path.
type File struct {
	ID               int64     `db:"id"`
	Path             string    `db:"path"`
	Language         string    `db:"language"`
	ModificationTime time.Time `db:"modification_time"`
	Indexed          bool      `db:"indexed"`
	Complete         bool      `db:"complete"`
	LineCount        int32     `db:"line_count"`
}

// FileContent holds the full text of an indexed file.
type FileContent struct {
	ID      int64  `db:"id"`
	Content string `db:"content"`
}

// LocalSymbol is a function-local name, deduplicated by name rather than by
// serialized hierarchy.
type LocalSymbol struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// SourceLocation is a span of source text inside a file node.
type SourceLocation struct {
	ID         int64        `db:"id"`
	FileNodeID int64        `db:"file_node_id"`
	StartLine  int32        `db:"start_line"`
	StartCol   int32        `db:"start_column"`
	EndLine    int32        `db:"end_line"`
	EndCol     int32        `db:"end_column"`
	Kind       LocationKind `db:"type"`
}

// NewSourceLocation validates the span ordering invariant: the start must
// precede the end, and a span within a single line must not be empty.
func NewSourceLocation(id, fileNodeID int64, startLine, startCol, endLine, endCol int32, kind LocationKind) (SourceLocation, error) {
	if startLine > endLine {
		return SourceLocation{}, sterrors.InvalidSourceRange()
	}
	if startLine == endLine && startCol >= endCol {
		return SourceLocation{}, sterrors.InvalidSourceRange()
	}
	return SourceLocation{
		ID:         id,
		FileNodeID: fileNodeID,
		StartLine:  startLine,
		StartCol:   startCol,
		EndLine:    endLine,
		EndCol:     endCol,
		Kind:       kind,
	}, nil
}

// Occurrence links any element (node, edge, or error) to a source location.
type Occurrence struct {
	ElementID        int64 `db:"element_id"`
	SourceLocationID int64 `db:"source_location_id"`
}

// ComponentAccess records member visibility for a node.
type ComponentAccess struct {
	NodeID int64      `db:"node_id"`
	Kind   AccessKind `db:"type"`
}

// Error is an indexer error reported against a translation unit.
type Error struct {
	ID              int64  `db:"id"`
	Message         string `db:"message"`
	Fatal           bool   `db:"fatal"`
	Indexed         bool   `db:"indexed"`
	TranslationUnit string `db:"translation_unit"`
}

// Meta is a project-level key/value row, e.g. the storage format version.
type Meta struct {
	ID    int64  `db:"id"`
	Key   string `db:"key"`
	Value string `db:"value"`
}
