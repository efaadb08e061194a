package sourcetrail

import (
	"context"
	"errors"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/storage"
	"github.com/xorpse/sourcetrail/types"
)

// NodeRecorder accumulates the fields of one symbol record and commits them
// in a single validated operation. A recorder is single-use: build it via
// one of the DB.Record* constructors, chain setters, then call Commit once.
type NodeRecorder struct {
	db        *DB
	kind      types.NodeKind
	name      string
	prefix    string
	postfix   string
	delimiter string
	parentID  int64
	hasParent bool
	indexed   bool
}

// RecordNode starts a recorder for a symbol of the given kind.
func (db *DB) RecordNode(kind types.NodeKind) *NodeRecorder {
	return &NodeRecorder{
		db:        db,
		kind:      kind,
		delimiter: types.DelimiterCxx,
		indexed:   true,
	}
}

// Name sets the identifier text of the symbol.
func (r *NodeRecorder) Name(name string) *NodeRecorder {
	r.name = name
	return r
}

// Prefix sets text rendered before the name, e.g. a return type.
func (r *NodeRecorder) Prefix(prefix string) *NodeRecorder {
	r.prefix = prefix
	return r
}

// Postfix sets text rendered after the name, e.g. a signature.
func (r *NodeRecorder) Postfix(postfix string) *NodeRecorder {
	r.postfix = postfix
	return r
}

// Delimiter sets the scope separator used when the symbol has no parent.
func (r *NodeRecorder) Delimiter(delimiter string) *NodeRecorder {
	r.delimiter = delimiter
	return r
}

// Parent nests the symbol under a previously recorded node.
func (r *NodeRecorder) Parent(id int64) *NodeRecorder {
	r.parentID = id
	r.hasParent = true
	return r
}

// Indexed marks whether the symbol was seen by the indexer (default true).
// Indexed symbols get an explicit definition.
func (r *NodeRecorder) Indexed(indexed bool) *NodeRecorder {
	r.indexed = indexed
	return r
}

// Commit interns the symbol and returns its node id. With a parent set, the
// parent is resolved first and its stored hierarchy extended; an unknown
// parent fails before anything is written.
func (r *NodeRecorder) Commit(ctx context.Context) (int64, error) {
	element := types.NameElement{Prefix: r.prefix, Name: r.name, Postfix: r.postfix}

	var hierarchy *types.NameHierarchy
	if r.hasParent {
		node, err := r.db.store.GetNode(ctx, r.parentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return 0, sterrors.ParentNotFound(r.parentID)
			}
			return 0, err
		}
		hierarchy, err = types.DeserializeName(node.SerializedName)
		if err != nil {
			return 0, err
		}
		hierarchy.Push(element)
	} else {
		var err error
		hierarchy, err = types.NewNameHierarchy(r.delimiter, []types.NameElement{element})
		if err != nil {
			return 0, err
		}
	}

	id, err := r.db.recordSymbol(ctx, hierarchy)
	if err != nil {
		return 0, err
	}

	if err := r.db.recordSymbolKind(ctx, id, r.kind); err != nil {
		return 0, err
	}

	if r.indexed {
		if err := r.db.recordSymbolDefinitionKind(ctx, id, types.DefinitionExplicit); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// Per-kind constructors.

func (db *DB) RecordSymbolNode() *NodeRecorder        { return db.RecordNode(types.NodeKindSymbol) }
func (db *DB) RecordBuiltinTypeNode() *NodeRecorder   { return db.RecordNode(types.NodeKindBuiltinType) }
func (db *DB) RecordModule() *NodeRecorder            { return db.RecordNode(types.NodeKindModule) }
func (db *DB) RecordNamespace() *NodeRecorder         { return db.RecordNode(types.NodeKindNamespace) }
func (db *DB) RecordPackage() *NodeRecorder           { return db.RecordNode(types.NodeKindPackage) }
func (db *DB) RecordStruct() *NodeRecorder            { return db.RecordNode(types.NodeKindStruct) }
func (db *DB) RecordClass() *NodeRecorder             { return db.RecordNode(types.NodeKindClass) }
func (db *DB) RecordInterface() *NodeRecorder         { return db.RecordNode(types.NodeKindInterface) }
func (db *DB) RecordAnnotation() *NodeRecorder        { return db.RecordNode(types.NodeKindAnnotation) }
func (db *DB) RecordGlobalVariable() *NodeRecorder    { return db.RecordNode(types.NodeKindGlobalVariable) }
func (db *DB) RecordField() *NodeRecorder             { return db.RecordNode(types.NodeKindField) }
func (db *DB) RecordFunction() *NodeRecorder          { return db.RecordNode(types.NodeKindFunction) }
func (db *DB) RecordMethod() *NodeRecorder            { return db.RecordNode(types.NodeKindMethod) }
func (db *DB) RecordEnum() *NodeRecorder              { return db.RecordNode(types.NodeKindEnum) }
func (db *DB) RecordEnumConstant() *NodeRecorder      { return db.RecordNode(types.NodeKindEnumConstant) }
func (db *DB) RecordTypedefNode() *NodeRecorder       { return db.RecordNode(types.NodeKindTypedef) }
func (db *DB) RecordTypeParameterNode() *NodeRecorder { return db.RecordNode(types.NodeKindTypeParameter) }
func (db *DB) RecordTypeNode() *NodeRecorder          { return db.RecordNode(types.NodeKindType) }
func (db *DB) RecordMacro() *NodeRecorder             { return db.RecordNode(types.NodeKindMacro) }
func (db *DB) RecordUnion() *NodeRecorder             { return db.RecordNode(types.NodeKindUnion) }
