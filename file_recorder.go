package sourcetrail

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/types"
)

// FileRecorder records a source file as a file node plus its metadata row
// and, for indexed files, its content.
type FileRecorder struct {
	db      *DB
	path    string
	mtime   time.Time
	content string
	indexed bool
}

// RecordFile starts a file recorder. The modification time defaults to now
// and the file is treated as indexed unless Indexed(false) is called.
func (db *DB) RecordFile() *FileRecorder {
	return &FileRecorder{
		db:      db,
		mtime:   time.Now().UTC(),
		indexed: true,
	}
}

// Path sets the file path, which also becomes the node name.
func (r *FileRecorder) Path(path string) *FileRecorder {
	r.path = path
	return r
}

// ModificationTime sets the file's last-modified timestamp.
func (r *FileRecorder) ModificationTime(t time.Time) *FileRecorder {
	r.mtime = t
	return r
}

// Content sets the file's source text.
func (r *FileRecorder) Content(content string) *FileRecorder {
	r.content = content
	return r
}

// Indexed marks whether the file was processed by the indexer.
// Non-indexed files store no content and a zero line count.
func (r *FileRecorder) Indexed(indexed bool) *FileRecorder {
	r.indexed = indexed
	return r
}

// CommitFile reads path from disk, taking content and modification time from
// the file itself, and commits the record.
func (r *FileRecorder) CommitFile(ctx context.Context, path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, sterrors.IO(err, "stat source file")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, sterrors.IO(err, "read source file")
	}

	return r.Path(path).
		ModificationTime(info.ModTime().UTC()).
		Content(string(content)).
		Commit(ctx)
}

// Commit interns the path as a file node and writes the file row, returning
// the node id.
func (r *FileRecorder) Commit(ctx context.Context) (int64, error) {
	if r.path == "" {
		return 0, sterrors.MissingField("file", "path")
	}

	hierarchy, err := types.NewNameHierarchy(types.DelimiterFile,
		[]types.NameElement{{Name: r.path}})
	if err != nil {
		return 0, err
	}
	serialized, err := hierarchy.SerializeName()
	if err != nil {
		return 0, err
	}

	id, err := r.db.addNodeIfNotExists(ctx, serialized, types.NodeKindFile)
	if err != nil {
		return 0, err
	}

	var lines int32
	if r.indexed {
		lines = countLines(r.content)
	}

	if err := r.db.store.InsertFile(ctx, types.File{
		ID:               id,
		Path:             r.path,
		ModificationTime: r.mtime,
		Indexed:          r.indexed,
		Complete:         true,
		LineCount:        lines,
	}); err != nil {
		return 0, err
	}

	if r.indexed {
		if err := r.db.store.InsertFileContent(ctx, types.FileContent{
			ID:      id,
			Content: r.content,
		}); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// countLines counts newline-terminated lines; a trailing fragment without a
// final newline still counts as a line.
func countLines(content string) int32 {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return int32(n)
}
