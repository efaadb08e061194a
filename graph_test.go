package sourcetrail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/storage"
	"github.com/xorpse/sourcetrail/types"
)

func setupTestDB(t *testing.T) (*DB, *storage.SQLiteStore) {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.CreateTables(context.Background()))
	return New(store, ":memory:"), store
}

func nodeCount(t *testing.T, store *storage.SQLiteStore) int64 {
	t.Helper()
	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	return counts["node"]
}

func edgeCount(t *testing.T, store *storage.SQLiteStore) int64 {
	t.Helper()
	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	return counts["edge"]
}

func TestRecordClassCreatesNodeAndSymbol(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	id, err := db.RecordClass().Name("MyClass").Commit(ctx)
	require.NoError(t, err)

	node, err := store.GetNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.NodeKindClass, node.Kind)
	assert.Equal(t, "::\tmMyClass\ts\tp", node.SerializedName)

	sym, err := store.GetSymbol(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.DefinitionExplicit, sym.DefinitionKind)
}

func TestNonIndexedSymbolHasNoDefinition(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	id, err := db.RecordClass().Name("External").Indexed(false).Commit(ctx)
	require.NoError(t, err)

	_, err = store.GetSymbol(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecordSymbolIsIdempotent(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	first, err := db.RecordClass().Name("Foo").Commit(ctx)
	require.NoError(t, err)
	nodes := nodeCount(t, store)

	second, err := db.RecordClass().Name("Foo").Commit(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, nodes, nodeCount(t, store))
}

func TestNestedSymbolCreatesChainWithMemberEdges(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	nsID, err := db.RecordNamespace().Name("outer").Commit(ctx)
	require.NoError(t, err)

	classID, err := db.RecordClass().Name("Inner").Parent(nsID).Commit(ctx)
	require.NoError(t, err)

	methodID, err := db.RecordMethod().Name("run").Parent(classID).Commit(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), nodeCount(t, store))

	// every adjacent level pair gets a member edge on each commit, so the
	// outer->Inner link appears once per descendant commit
	edges, err := store.ListEdges(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 3)
	for _, e := range edges {
		assert.Equal(t, types.EdgeKindMember, e.Kind)
	}
	assert.Equal(t, nsID, edges[0].SourceID)
	assert.Equal(t, classID, edges[0].TargetID)
	last := edges[len(edges)-1]
	assert.Equal(t, classID, last.SourceID)
	assert.Equal(t, methodID, last.TargetID)

	// intermediate levels keep their recorded kinds
	node, err := store.GetNode(ctx, nsID)
	require.NoError(t, err)
	assert.Equal(t, types.NodeKindNamespace, node.Kind)
}

func TestFreshHierarchyCreatesChain(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	hierarchy, err := types.NewNameHierarchy(types.DelimiterCxx, []types.NameElement{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	})
	require.NoError(t, err)

	leaf, err := db.recordSymbol(ctx, hierarchy)
	require.NoError(t, err)

	assert.Equal(t, int64(3), nodeCount(t, store))
	assert.Equal(t, int64(2), edgeCount(t, store))

	node, err := store.GetNode(ctx, leaf)
	require.NoError(t, err)
	serialized, err := hierarchy.SerializeName()
	require.NoError(t, err)
	assert.Equal(t, serialized, node.SerializedName)
}

func TestParentNotFoundWritesNothing(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	_, err := db.RecordField().Name("orphan").Parent(999).Commit(ctx)
	require.Error(t, err)
	assert.True(t, sterrors.IsKind(err, sterrors.KindParentNotFound))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts["element"])
	assert.Zero(t, counts["node"])
	assert.Zero(t, counts["edge"])
}

func TestInterningSurvivesReopen(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	first, err := db.RecordClass().Name("Shared").Commit(ctx)
	require.NoError(t, err)
	nodes := nodeCount(t, store)

	// a fresh handle has an empty cache and must fall back to the database
	reopened := New(store, ":memory:")
	second, err := reopened.RecordClass().Name("Shared").Commit(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, nodes, nodeCount(t, store))
}

func TestRecordReferenceWrappers(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	caller, err := db.RecordFunction().Name("caller").Commit(ctx)
	require.NoError(t, err)
	callee, err := db.RecordFunction().Name("callee").Commit(ctx)
	require.NoError(t, err)

	refID, err := db.RecordRefCall(ctx, caller, callee)
	require.NoError(t, err)

	edges, err := store.ListEdges(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, refID, edges[0].ID)
	assert.Equal(t, types.EdgeKindCall, edges[0].Kind)
	assert.Equal(t, caller, edges[0].SourceID)
	assert.Equal(t, callee, edges[0].TargetID)

	require.NoError(t, db.RecordReferenceIsAmbiguous(ctx, refID))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["element_component"])
}

func TestRecordLocalSymbolDeduplicatesByName(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	first, err := db.RecordLocalSymbol(ctx, "tmp")
	require.NoError(t, err)

	second, err := db.RecordLocalSymbol(ctx, "tmp")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := db.RecordLocalSymbol(ctx, "i")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["local_symbol"])
}

func TestRecordFileLanguage(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	err := db.RecordFileLanguage(ctx, 77, "python")
	assert.True(t, sterrors.IsKind(err, sterrors.KindFileNotFound))

	fileID, err := db.RecordFile().Path("pkg/mod.py").Content("x = 1\n").Commit(ctx)
	require.NoError(t, err)

	require.NoError(t, db.RecordFileLanguage(ctx, fileID, "python"))

	file, err := store.GetFile(ctx, fileID)
	require.NoError(t, err)
	assert.Equal(t, "python", file.Language)
}

func TestRecordSymbolAccess(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	classID, err := db.RecordClass().Name("C").Commit(ctx)
	require.NoError(t, err)
	fieldID, err := db.RecordField().Name("secret").Parent(classID).Commit(ctx)
	require.NoError(t, err)

	require.NoError(t, db.RecordSymbolAccess(ctx, fieldID, types.AccessPrivate))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["component_access"])
}

func TestEndToEndUsageScenario(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	classID, err := db.RecordClass().Name("PersonalInfo").Commit(ctx)
	require.NoError(t, err)

	fieldID, err := db.RecordField().Name("first_name").Parent(classID).Commit(ctx)
	require.NoError(t, err)

	methID, err := db.RecordMethod().Name("greet").Parent(classID).Commit(ctx)
	require.NoError(t, err)

	_, err = db.RecordRefUsage(ctx, methID, fieldID)
	require.NoError(t, err)

	field, err := store.GetNode(ctx, fieldID)
	require.NoError(t, err)
	assert.Equal(t, types.NodeKindField, field.Kind)

	hierarchy, err := types.DeserializeName(field.SerializedName)
	require.NoError(t, err)
	require.Equal(t, 2, hierarchy.Size())
	assert.Equal(t, "PersonalInfo", hierarchy.Elements()[0].Name)
	assert.Equal(t, "first_name", hierarchy.Elements()[1].Name)

	// 3 symbol nodes, 2 member edges, 1 usage edge
	assert.Equal(t, int64(3), nodeCount(t, store))
	assert.Equal(t, int64(3), edgeCount(t, store))
}
