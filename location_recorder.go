package sourcetrail

import (
	"context"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/types"
)

// SourceLocationRecorder accumulates one source span tied to a recorded
// element. Positions default to -1 so column 0 remains a valid coordinate.
type SourceLocationRecorder struct {
	db       *DB
	kind     types.LocationKind
	symbolID int64
	fileID   int64
	startLn  int32
	startCol int32
	endLn    int32
	endCol   int32
}

// RecordLocation starts a recorder for a span of the given kind.
func (db *DB) RecordLocation(kind types.LocationKind) *SourceLocationRecorder {
	return &SourceLocationRecorder{
		db:       db,
		kind:     kind,
		symbolID: -1,
		fileID:   -1,
		startLn:  -1,
		startCol: -1,
		endLn:    -1,
		endCol:   -1,
	}
}

// Symbol sets the element the span belongs to.
func (r *SourceLocationRecorder) Symbol(id int64) *SourceLocationRecorder {
	r.symbolID = id
	return r
}

// File sets the file node containing the span.
func (r *SourceLocationRecorder) File(id int64) *SourceLocationRecorder {
	r.fileID = id
	return r
}

// StartPosition sets the 1-based line and 0-based column the span starts at.
func (r *SourceLocationRecorder) StartPosition(line, column int32) *SourceLocationRecorder {
	r.startLn = line
	r.startCol = column
	return r
}

// EndPosition sets the line and column the span ends at (exclusive column).
func (r *SourceLocationRecorder) EndPosition(line, column int32) *SourceLocationRecorder {
	r.endLn = line
	r.endCol = column
	return r
}

// Commit validates the record and writes the span plus its occurrence.
func (r *SourceLocationRecorder) Commit(ctx context.Context) error {
	if r.symbolID == -1 {
		return sterrors.MissingField("source location", "symbol")
	}
	if r.fileID == -1 {
		return sterrors.MissingField("source location", "file")
	}
	if r.startLn == -1 || r.startCol == -1 {
		return sterrors.MissingField("source location", "start position")
	}
	if r.endLn == -1 || r.endCol == -1 {
		return sterrors.MissingField("source location", "end position")
	}

	return r.db.recordSourceLocation(ctx, r.symbolID, r.fileID,
		r.startLn, r.startCol, r.endLn, r.endCol, r.kind)
}

// Per-kind constructors.

// RecordSymbolLocation records where a symbol's name appears.
func (db *DB) RecordSymbolLocation() *SourceLocationRecorder {
	return db.RecordLocation(types.LocationToken)
}

// RecordSymbolScopeLocation records the full extent of a symbol's body.
func (db *DB) RecordSymbolScopeLocation() *SourceLocationRecorder {
	return db.RecordLocation(types.LocationScope)
}

// RecordSymbolSignatureLocation records the extent of a declaration
// signature.
func (db *DB) RecordSymbolSignatureLocation() *SourceLocationRecorder {
	return db.RecordLocation(types.LocationSignature)
}

// RecordReferenceLocation records where a reference occurs in source.
func (db *DB) RecordReferenceLocation() *SourceLocationRecorder {
	return db.RecordLocation(types.LocationToken)
}

// RecordQualifierLocation records a scope qualifier occurrence.
func (db *DB) RecordQualifierLocation() *SourceLocationRecorder {
	return db.RecordLocation(types.LocationQualifier)
}

// RecordLocalSymbolLocation records where a local symbol occurs.
func (db *DB) RecordLocalSymbolLocation() *SourceLocationRecorder {
	return db.RecordLocation(types.LocationLocalSymbol)
}

// RecordAtomicSourceRange marks a span the GUI treats as indivisible.
func (db *DB) RecordAtomicSourceRange() *SourceLocationRecorder {
	return db.RecordLocation(types.LocationAtomicRange)
}
