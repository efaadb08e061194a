package sourcetrail

import (
	"context"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/types"
)

// unsolvedSymbolName is the single placeholder every unresolved reference
// points at. Interning makes all such references share one node.
const unsolvedSymbolName = "unsolved symbol"

// UnsolvedSymbolRecorder records a reference whose target could not be
// resolved by the indexer. The reference edge points at a shared placeholder
// node and its span is stored with the unsolved location kind.
type UnsolvedSymbolRecorder struct {
	db       *DB
	symbolID int64
	refKind  types.EdgeKind
	hasKind  bool
	fileID   int64
	startLn  int32
	startCol int32
	endLn    int32
	endCol   int32
}

// RecordReferenceToUnsolvedSymbol starts an unsolved-reference recorder.
func (db *DB) RecordReferenceToUnsolvedSymbol() *UnsolvedSymbolRecorder {
	return &UnsolvedSymbolRecorder{
		db:       db,
		symbolID: -1,
		fileID:   -1,
		startLn:  -1,
		startCol: -1,
		endLn:    -1,
		endCol:   -1,
	}
}

// Symbol sets the source symbol holding the unresolved reference.
func (r *UnsolvedSymbolRecorder) Symbol(id int64) *UnsolvedSymbolRecorder {
	r.symbolID = id
	return r
}

// ReferenceKind sets the kind of relationship that failed to resolve.
func (r *UnsolvedSymbolRecorder) ReferenceKind(kind types.EdgeKind) *UnsolvedSymbolRecorder {
	r.refKind = kind
	r.hasKind = true
	return r
}

// File sets the file node containing the reference.
func (r *UnsolvedSymbolRecorder) File(id int64) *UnsolvedSymbolRecorder {
	r.fileID = id
	return r
}

// StartPosition sets where the reference span starts.
func (r *UnsolvedSymbolRecorder) StartPosition(line, column int32) *UnsolvedSymbolRecorder {
	r.startLn = line
	r.startCol = column
	return r
}

// EndPosition sets where the reference span ends.
func (r *UnsolvedSymbolRecorder) EndPosition(line, column int32) *UnsolvedSymbolRecorder {
	r.endLn = line
	r.endCol = column
	return r
}

// Commit validates the record, interns the placeholder, stores the reference
// edge and its span, and returns the reference id.
func (r *UnsolvedSymbolRecorder) Commit(ctx context.Context) (int64, error) {
	if r.symbolID == -1 {
		return 0, sterrors.MissingField("unsolved symbol", "symbol")
	}
	if r.fileID == -1 {
		return 0, sterrors.MissingField("unsolved symbol", "file")
	}
	if r.startLn == -1 || r.startCol == -1 {
		return 0, sterrors.MissingField("unsolved symbol", "start position")
	}
	if r.endLn == -1 || r.endCol == -1 {
		return 0, sterrors.MissingField("unsolved symbol", "end position")
	}
	if !r.hasKind {
		return 0, sterrors.MissingField("unsolved symbol", "reference kind")
	}
	if r.startLn > r.endLn || (r.startLn == r.endLn && r.startCol >= r.endCol) {
		return 0, sterrors.InvalidSourceRange()
	}

	hierarchy, err := types.NewNameHierarchy(types.DelimiterUnknown,
		[]types.NameElement{{Name: unsolvedSymbolName}})
	if err != nil {
		return 0, err
	}

	placeholderID, err := r.db.recordSymbol(ctx, hierarchy)
	if err != nil {
		return 0, err
	}

	refID, err := r.db.recordEdge(ctx, r.refKind, r.symbolID, placeholderID)
	if err != nil {
		return 0, err
	}

	if err := r.db.recordSourceLocation(ctx, refID, r.fileID,
		r.startLn, r.startCol, r.endLn, r.endCol, types.LocationUnsolved); err != nil {
		return 0, err
	}

	return refID, nil
}
