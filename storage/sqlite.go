package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/types"
)

// modificationTimeLayout is the timestamp format the Sourcetrail GUI parses
// from the file table.
const modificationTimeLayout = "2006-01-02 15:04:05"

// schema is the Sourcetrail storage layout. Column names, foreign keys and
// the occurrence composite key are part of the on-disk format.
const schema = `
CREATE TABLE IF NOT EXISTS element(
	id INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS element_component(
	id INTEGER PRIMARY KEY,
	element_id INTEGER,
	type INTEGER,
	data TEXT,
	FOREIGN KEY(element_id) REFERENCES element(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS edge(
	id INTEGER PRIMARY KEY,
	type INTEGER,
	source_node_id INTEGER,
	target_node_id INTEGER,
	FOREIGN KEY(source_node_id) REFERENCES node(id) ON DELETE CASCADE,
	FOREIGN KEY(target_node_id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS node(
	id INTEGER PRIMARY KEY,
	type INTEGER,
	serialized_name TEXT,
	FOREIGN KEY(id) REFERENCES element(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS symbol(
	id INTEGER PRIMARY KEY,
	definition_kind INTEGER,
	FOREIGN KEY(id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS file(
	id INTEGER PRIMARY KEY,
	path TEXT,
	language TEXT,
	modification_time TEXT,
	indexed BOOLEAN,
	complete BOOLEAN,
	line_count INTEGER,
	FOREIGN KEY(id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS filecontent(
	id INTEGER PRIMARY KEY,
	content TEXT,
	FOREIGN KEY(id) REFERENCES file(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS local_symbol(
	id INTEGER PRIMARY KEY,
	name TEXT,
	FOREIGN KEY(id) REFERENCES element(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS source_location(
	id INTEGER PRIMARY KEY,
	file_node_id INTEGER,
	start_line INTEGER,
	start_column INTEGER,
	end_line INTEGER,
	end_column INTEGER,
	type INTEGER,
	FOREIGN KEY(file_node_id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS occurrence(
	element_id INTEGER,
	source_location_id INTEGER,
	PRIMARY KEY(element_id, source_location_id),
	FOREIGN KEY(element_id) REFERENCES element(id) ON DELETE CASCADE,
	FOREIGN KEY(source_location_id) REFERENCES source_location(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS component_access(
	node_id INTEGER PRIMARY KEY,
	type INTEGER,
	FOREIGN KEY(node_id) REFERENCES node(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS error(
	id INTEGER PRIMARY KEY,
	message TEXT,
	fatal BOOLEAN,
	indexed BOOLEAN,
	translation_unit TEXT,
	FOREIGN KEY(id) REFERENCES element(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS meta(
	id INTEGER PRIMARY KEY,
	key TEXT,
	value TEXT
);
`

// graphTables are the tables emptied by Clear, in dependency order. The meta
// table survives a clear so the project keeps its storage version.
var graphTables = []string{
	"occurrence",
	"source_location",
	"component_access",
	"element_component",
	"error",
	"filecontent",
	"file",
	"local_symbol",
	"symbol",
	"edge",
	"node",
	"element",
}

var allTables = append([]string{"meta"}, graphTables...)

// SQLiteStore implements Store over a single SQLite database file.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewSQLiteStore opens (creating if necessary) the database at path. Pass
// ":memory:" for an ephemeral store.
func NewSQLiteStore(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logrus.New()
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, sterrors.IO(err, "create database directory")
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, sterrors.Database(err, "connect to sqlite")
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA journal_mode = WAL")

	logger.WithField("path", path).Debug("opened sqlite store")

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTables creates the full schema if it does not exist.
func (s *SQLiteStore) CreateTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return sterrors.Database(err, "create tables")
	}
	return nil
}

// DropTables removes the full schema.
func (s *SQLiteStore) DropTables(ctx context.Context) error {
	for _, table := range allTables {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return sterrors.Database(err, fmt.Sprintf("drop table %s", table))
		}
	}
	return nil
}

// Clear deletes every graph row, keeping project meta.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	for _, table := range graphTables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return sterrors.Database(err, fmt.Sprintf("clear table %s", table))
		}
	}
	return nil
}

// NewElement inserts an identity row and returns the allocated id.
func (s *SQLiteStore) NewElement(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO element(id) VALUES(NULL)`)
	if err != nil {
		return 0, sterrors.Database(err, "insert element")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, sterrors.Database(err, "element id")
	}
	return id, nil
}

// nodeRow carries the raw discriminant so unknown values can be rejected on
// read instead of silently defaulted.
type nodeRow struct {
	ID             int64  `db:"id"`
	Kind           int32  `db:"type"`
	SerializedName string `db:"serialized_name"`
}

func (r nodeRow) toNode() (types.Node, error) {
	kind, err := types.NodeKindFromInt(r.Kind)
	if err != nil {
		return types.Node{}, err
	}
	return types.Node{ID: r.ID, Kind: kind, SerializedName: r.SerializedName}, nil
}

func (s *SQLiteStore) InsertNode(ctx context.Context, node types.Node) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO node(id, type, serialized_name) VALUES(?, ?, ?)`,
		node.ID, int32(node.Kind), node.SerializedName)
	if err != nil {
		return sterrors.Database(err, "insert node")
	}
	return nil
}

func (s *SQLiteStore) GetNode(ctx context.Context, id int64) (types.Node, error) {
	var row nodeRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM node WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Node{}, ErrNotFound
		}
		return types.Node{}, sterrors.Database(err, "get node")
	}
	return row.toNode()
}

func (s *SQLiteStore) GetNodeBySerializedName(ctx context.Context, name string) (types.Node, error) {
	var row nodeRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM node WHERE serialized_name = ? LIMIT 1`, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Node{}, ErrNotFound
		}
		return types.Node{}, sterrors.Database(err, "get node by serialized name")
	}
	return row.toNode()
}

func (s *SQLiteStore) UpdateNode(ctx context.Context, node types.Node) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE node SET type = ?, serialized_name = ? WHERE id = ?`,
		int32(node.Kind), node.SerializedName, node.ID)
	if err != nil {
		return sterrors.Database(err, "update node")
	}
	return nil
}

type symbolRow struct {
	ID             int64 `db:"id"`
	DefinitionKind int32 `db:"definition_kind"`
}

func (r symbolRow) toSymbol() (types.Symbol, error) {
	kind, err := types.DefinitionKindFromInt(r.DefinitionKind)
	if err != nil {
		return types.Symbol{}, err
	}
	return types.Symbol{ID: r.ID, DefinitionKind: kind}, nil
}

func (s *SQLiteStore) InsertSymbol(ctx context.Context, sym types.Symbol) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO symbol(id, definition_kind) VALUES(?, ?)`,
		sym.ID, int32(sym.DefinitionKind))
	if err != nil {
		return sterrors.Database(err, "insert symbol")
	}
	return nil
}

func (s *SQLiteStore) GetSymbol(ctx context.Context, id int64) (types.Symbol, error) {
	var row symbolRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM symbol WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Symbol{}, ErrNotFound
		}
		return types.Symbol{}, sterrors.Database(err, "get symbol")
	}
	return row.toSymbol()
}

func (s *SQLiteStore) UpdateSymbol(ctx context.Context, sym types.Symbol) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE symbol SET definition_kind = ? WHERE id = ?`,
		int32(sym.DefinitionKind), sym.ID)
	if err != nil {
		return sterrors.Database(err, "update symbol")
	}
	return nil
}

func (s *SQLiteStore) InsertEdge(ctx context.Context, edge types.Edge) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO edge(id, type, source_node_id, target_node_id) VALUES(?, ?, ?, ?)`,
		edge.ID, int32(edge.Kind), edge.SourceID, edge.TargetID)
	if err != nil {
		return sterrors.Database(err, "insert edge")
	}
	return nil
}

func (s *SQLiteStore) InsertSourceLocation(ctx context.Context, loc types.SourceLocation) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO source_location(id, file_node_id, start_line, start_column, end_line, end_column, type)
		 VALUES(NULL, ?, ?, ?, ?, ?, ?)`,
		loc.FileNodeID, loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol, int32(loc.Kind))
	if err != nil {
		return 0, sterrors.Database(err, "insert source location")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, sterrors.Database(err, "source location id")
	}
	return id, nil
}

func (s *SQLiteStore) InsertOccurrence(ctx context.Context, occ types.Occurrence) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO occurrence(element_id, source_location_id) VALUES(?, ?)`,
		occ.ElementID, occ.SourceLocationID)
	if err != nil {
		return sterrors.Database(err, "insert occurrence")
	}
	return nil
}

type fileRow struct {
	ID               int64  `db:"id"`
	Path             string `db:"path"`
	Language         string `db:"language"`
	ModificationTime string `db:"modification_time"`
	Indexed          bool   `db:"indexed"`
	Complete         bool   `db:"complete"`
	LineCount        int32  `db:"line_count"`
}

func (r fileRow) toFile() (types.File, error) {
	mtime, err := time.Parse(modificationTimeLayout, r.ModificationTime)
	if err != nil {
		return types.File{}, sterrors.Wrap(err, sterrors.KindDecode, "parse file modification time")
	}
	return types.File{
		ID:               r.ID,
		Path:             r.Path,
		Language:         r.Language,
		ModificationTime: mtime,
		Indexed:          r.Indexed,
		Complete:         r.Complete,
		LineCount:        r.LineCount,
	}, nil
}

func (s *SQLiteStore) InsertFile(ctx context.Context, file types.File) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file(id, path, language, modification_time, indexed, complete, line_count)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`,
		file.ID, file.Path, file.Language,
		file.ModificationTime.UTC().Format(modificationTimeLayout),
		file.Indexed, file.Complete, file.LineCount)
	if err != nil {
		return sterrors.Database(err, "insert file")
	}
	return nil
}

func (s *SQLiteStore) GetFile(ctx context.Context, id int64) (types.File, error) {
	var row fileRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM file WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.File{}, ErrNotFound
		}
		return types.File{}, sterrors.Database(err, "get file")
	}
	return row.toFile()
}

func (s *SQLiteStore) UpdateFile(ctx context.Context, file types.File) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE file SET path = ?, language = ?, modification_time = ?, indexed = ?, complete = ?, line_count = ? WHERE id = ?`,
		file.Path, file.Language,
		file.ModificationTime.UTC().Format(modificationTimeLayout),
		file.Indexed, file.Complete, file.LineCount, file.ID)
	if err != nil {
		return sterrors.Database(err, "update file")
	}
	return nil
}

func (s *SQLiteStore) InsertFileContent(ctx context.Context, content types.FileContent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO filecontent(id, content) VALUES(?, ?)`,
		content.ID, content.Content)
	if err != nil {
		return sterrors.Database(err, "insert file content")
	}
	return nil
}

func (s *SQLiteStore) InsertLocalSymbol(ctx context.Context, sym types.LocalSymbol) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO local_symbol(id, name) VALUES(?, ?)`, sym.ID, sym.Name)
	if err != nil {
		return sterrors.Database(err, "insert local symbol")
	}
	return nil
}

func (s *SQLiteStore) GetLocalSymbolByName(ctx context.Context, name string) (types.LocalSymbol, error) {
	var sym types.LocalSymbol
	err := s.db.GetContext(ctx, &sym,
		`SELECT * FROM local_symbol WHERE name = ? LIMIT 1`, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.LocalSymbol{}, ErrNotFound
		}
		return types.LocalSymbol{}, sterrors.Database(err, "get local symbol by name")
	}
	return sym, nil
}

func (s *SQLiteStore) InsertElementComponent(ctx context.Context, comp types.ElementComponent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO element_component(id, element_id, type, data) VALUES(NULL, ?, ?, ?)`,
		comp.ElementID, int32(comp.Kind), comp.Data)
	if err != nil {
		return sterrors.Database(err, "insert element component")
	}
	return nil
}

func (s *SQLiteStore) InsertComponentAccess(ctx context.Context, access types.ComponentAccess) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO component_access(node_id, type) VALUES(?, ?)`,
		access.NodeID, int32(access.Kind))
	if err != nil {
		return sterrors.Database(err, "insert component access")
	}
	return nil
}

func (s *SQLiteStore) InsertError(ctx context.Context, e types.Error) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO error(id, message, fatal, indexed, translation_unit) VALUES(?, ?, ?, ?, ?)`,
		e.ID, e.Message, e.Fatal, e.Indexed, e.TranslationUnit)
	if err != nil {
		return sterrors.Database(err, "insert error")
	}
	return nil
}

func (s *SQLiteStore) InsertMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meta(id, key, value) VALUES(NULL, ?, ?)`, key, value)
	if err != nil {
		return sterrors.Database(err, "insert meta")
	}
	return nil
}

func (s *SQLiteStore) ListMeta(ctx context.Context) ([]types.Meta, error) {
	var meta []types.Meta
	if err := s.db.SelectContext(ctx, &meta, `SELECT * FROM meta`); err != nil {
		return nil, sterrors.Database(err, "list meta")
	}
	return meta, nil
}

// ListNodes returns every node. Nodes with unknown kind discriminants cause a
// decode failure.
func (s *SQLiteStore) ListNodes(ctx context.Context) ([]types.Node, error) {
	var rows []nodeRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM node`); err != nil {
		return nil, sterrors.Database(err, "list nodes")
	}
	nodes := make([]types.Node, 0, len(rows))
	for _, row := range rows {
		node, err := row.toNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

type edgeRow struct {
	ID       int64 `db:"id"`
	Kind     int32 `db:"type"`
	SourceID int64 `db:"source_node_id"`
	TargetID int64 `db:"target_node_id"`
}

// ListEdges returns every edge. Edges with unknown kind discriminants cause a
// decode failure.
func (s *SQLiteStore) ListEdges(ctx context.Context) ([]types.Edge, error) {
	var rows []edgeRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM edge`); err != nil {
		return nil, sterrors.Database(err, "list edges")
	}
	edges := make([]types.Edge, 0, len(rows))
	for _, row := range rows {
		kind, err := types.EdgeKindFromInt(row.Kind)
		if err != nil {
			return nil, err
		}
		edges = append(edges, types.Edge{
			ID:       row.ID,
			Kind:     kind,
			SourceID: row.SourceID,
			TargetID: row.TargetID,
		})
	}
	return edges, nil
}

type sourceLocationRow struct {
	ID         int64 `db:"id"`
	FileNodeID int64 `db:"file_node_id"`
	StartLine  int32 `db:"start_line"`
	StartCol   int32 `db:"start_column"`
	EndLine    int32 `db:"end_line"`
	EndCol     int32 `db:"end_column"`
	Kind       int32 `db:"type"`
}

// ListSourceLocations returns every source location.
func (s *SQLiteStore) ListSourceLocations(ctx context.Context) ([]types.SourceLocation, error) {
	var rows []sourceLocationRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM source_location`); err != nil {
		return nil, sterrors.Database(err, "list source locations")
	}
	locs := make([]types.SourceLocation, 0, len(rows))
	for _, row := range rows {
		kind, err := types.LocationKindFromInt(row.Kind)
		if err != nil {
			return nil, err
		}
		locs = append(locs, types.SourceLocation{
			ID:         row.ID,
			FileNodeID: row.FileNodeID,
			StartLine:  row.StartLine,
			StartCol:   row.StartCol,
			EndLine:    row.EndLine,
			EndCol:     row.EndCol,
			Kind:       kind,
		})
	}
	return locs, nil
}

// ListErrors returns every recorded indexer error.
func (s *SQLiteStore) ListErrors(ctx context.Context) ([]types.Error, error) {
	var errs []types.Error
	if err := s.db.SelectContext(ctx, &errs, `SELECT * FROM error`); err != nil {
		return nil, sterrors.Database(err, "list errors")
	}
	return errs, nil
}

// ListOccurrences returns every element/location association.
func (s *SQLiteStore) ListOccurrences(ctx context.Context) ([]types.Occurrence, error) {
	var occs []types.Occurrence
	if err := s.db.SelectContext(ctx, &occs, `SELECT * FROM occurrence`); err != nil {
		return nil, sterrors.Database(err, "list occurrences")
	}
	return occs, nil
}

// Counts returns the row count per table, for diagnostics.
func (s *SQLiteStore) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(allTables))
	for _, table := range allTables {
		var n int64
		if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table); err != nil {
			return nil, sterrors.Database(err, fmt.Sprintf("count rows in %s", table))
		}
		counts[table] = n
	}
	return counts, nil
}
