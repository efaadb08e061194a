package sourcetrail

import (
	"context"
	"errors"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/storage"
	"github.com/xorpse/sourcetrail/types"
)

// addNodeIfNotExists interns one serialized hierarchy prefix. The in-memory
// cache is consulted first, then the database itself: a node recorded by an
// earlier session (or another handle on the same store) must be reused, not
// duplicated. New nodes start with the generic Symbol kind; the leaf is
// re-kinded afterwards.
func (db *DB) addNodeIfNotExists(ctx context.Context, serialized string, kind types.NodeKind) (int64, error) {
	if id, ok := db.nameCache[serialized]; ok {
		return id, nil
	}

	node, err := db.store.GetNodeBySerializedName(ctx, serialized)
	if err == nil {
		db.nameCache[serialized] = node.ID
		return node.ID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}

	id, err := db.store.NewElement(ctx)
	if err != nil {
		return 0, err
	}
	if err := db.store.InsertNode(ctx, types.Node{ID: id, Kind: kind, SerializedName: serialized}); err != nil {
		return 0, err
	}
	db.nameCache[serialized] = id
	return id, nil
}

// recordSymbol interns every prefix of the hierarchy and links adjacent
// levels with member edges, returning the leaf node id.
func (db *DB) recordSymbol(ctx context.Context, hierarchy *types.NameHierarchy) (int64, error) {
	ids := make([]int64, 0, hierarchy.Size())
	for i := 0; i < hierarchy.Size(); i++ {
		serialized, err := hierarchy.SerializeRange(0, i+1)
		if err != nil {
			return 0, err
		}
		id, err := db.addNodeIfNotExists(ctx, serialized, types.NodeKindSymbol)
		if err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}

	for i := 1; i < len(ids); i++ {
		if _, err := db.recordEdge(ctx, types.EdgeKindMember, ids[i-1], ids[i]); err != nil {
			return 0, err
		}
	}

	return ids[len(ids)-1], nil
}

// recordSymbolKind overwrites the stored node kind of an interned symbol.
func (db *DB) recordSymbolKind(ctx context.Context, id int64, kind types.NodeKind) error {
	node, err := db.store.GetNode(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	node.Kind = kind
	return db.store.UpdateNode(ctx, node)
}

// recordSymbolDefinitionKind upserts the symbol row, skipping the write when
// the stored kind already matches.
func (db *DB) recordSymbolDefinitionKind(ctx context.Context, id int64, kind types.DefinitionKind) error {
	sym, err := db.store.GetSymbol(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return db.store.InsertSymbol(ctx, types.Symbol{ID: id, DefinitionKind: kind})
		}
		return err
	}
	if sym.DefinitionKind == kind {
		return nil
	}
	sym.DefinitionKind = kind
	return db.store.UpdateSymbol(ctx, sym)
}

// recordEdge allocates an element and stores a typed edge, returning the
// edge id.
func (db *DB) recordEdge(ctx context.Context, kind types.EdgeKind, sourceID, targetID int64) (int64, error) {
	id, err := db.store.NewElement(ctx)
	if err != nil {
		return 0, err
	}
	edge := types.Edge{ID: id, Kind: kind, SourceID: sourceID, TargetID: targetID}
	if err := db.store.InsertEdge(ctx, edge); err != nil {
		return 0, err
	}
	return id, nil
}

// recordSourceLocation stores a validated span and ties it to an element via
// an occurrence row.
func (db *DB) recordSourceLocation(ctx context.Context, elementID, fileID int64, startLine, startCol, endLine, endCol int32, kind types.LocationKind) error {
	loc, err := types.NewSourceLocation(0, fileID, startLine, startCol, endLine, endCol, kind)
	if err != nil {
		return err
	}
	locID, err := db.store.InsertSourceLocation(ctx, loc)
	if err != nil {
		return err
	}
	return db.store.InsertOccurrence(ctx, types.Occurrence{ElementID: elementID, SourceLocationID: locID})
}

// RecordReference records a typed relationship between two previously
// recorded symbols and returns the reference id.
func (db *DB) RecordReference(ctx context.Context, kind types.EdgeKind, sourceID, targetID int64) (int64, error) {
	return db.recordEdge(ctx, kind, sourceID, targetID)
}

func (db *DB) RecordRefMember(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindMember, sourceID, targetID)
}

func (db *DB) RecordRefTypeUsage(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindTypeUsage, sourceID, targetID)
}

func (db *DB) RecordRefUsage(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindUsage, sourceID, targetID)
}

func (db *DB) RecordRefCall(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindCall, sourceID, targetID)
}

func (db *DB) RecordRefInheritance(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindInheritance, sourceID, targetID)
}

func (db *DB) RecordRefOverride(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindOverride, sourceID, targetID)
}

func (db *DB) RecordRefTypeArgument(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindTypeArgument, sourceID, targetID)
}

func (db *DB) RecordRefTemplateSpecialization(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindTemplateSpecialization, sourceID, targetID)
}

func (db *DB) RecordRefInclude(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindInclude, sourceID, targetID)
}

func (db *DB) RecordRefImport(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindImport, sourceID, targetID)
}

func (db *DB) RecordRefBundledEdges(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindBundledEdges, sourceID, targetID)
}

func (db *DB) RecordRefMacroUsage(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindMacroUsage, sourceID, targetID)
}

func (db *DB) RecordRefAnnotationUsage(ctx context.Context, sourceID, targetID int64) (int64, error) {
	return db.RecordReference(ctx, types.EdgeKindAnnotationUsage, sourceID, targetID)
}

// RecordReferenceIsAmbiguous flags a previously recorded reference as
// ambiguous.
func (db *DB) RecordReferenceIsAmbiguous(ctx context.Context, referenceID int64) error {
	return db.store.InsertElementComponent(ctx, types.ElementComponent{
		ElementID: referenceID,
		Kind:      types.ElementComponentIsAmbiguous,
	})
}

// RecordLocalSymbol records a function-local name, reusing the existing row
// when the same name was recorded before.
func (db *DB) RecordLocalSymbol(ctx context.Context, name string) (int64, error) {
	local, err := db.store.GetLocalSymbolByName(ctx, name)
	if err == nil {
		return local.ID, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}

	id, err := db.store.NewElement(ctx)
	if err != nil {
		return 0, err
	}
	if err := db.store.InsertLocalSymbol(ctx, types.LocalSymbol{ID: id, Name: name}); err != nil {
		return 0, err
	}
	return id, nil
}

// RecordFileLanguage sets the language of a previously recorded file.
func (db *DB) RecordFileLanguage(ctx context.Context, id int64, language string) error {
	file, err := db.store.GetFile(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return sterrors.FileNotFound(id)
		}
		return err
	}
	file.Language = language
	return db.store.UpdateFile(ctx, file)
}

// RecordSymbolAccess records member visibility for a node.
func (db *DB) RecordSymbolAccess(ctx context.Context, nodeID int64, kind types.AccessKind) error {
	return db.store.InsertComponentAccess(ctx, types.ComponentAccess{NodeID: nodeID, Kind: kind})
}
