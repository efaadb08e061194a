package sourcetrail

import (
	"context"

	"github.com/xorpse/sourcetrail/sterrors"
	"github.com/xorpse/sourcetrail/types"
)

// ErrorRecorder records a message the indexer emitted while processing a
// file, together with the span it applies to.
type ErrorRecorder struct {
	db       *DB
	message  string
	fatal    bool
	fileID   int64
	startLn  int32
	startCol int32
	endLn    int32
	endCol   int32
}

// RecordError starts an indexer-error recorder.
func (db *DB) RecordError() *ErrorRecorder {
	return &ErrorRecorder{
		db:       db,
		fileID:   -1,
		startLn:  -1,
		startCol: -1,
		endLn:    -1,
		endCol:   -1,
	}
}

// Message sets the error text. Commit rejects an empty message.
func (r *ErrorRecorder) Message(message string) *ErrorRecorder {
	r.message = message
	return r
}

// Fatal marks the error as one that aborted indexing of the file.
func (r *ErrorRecorder) Fatal(fatal bool) *ErrorRecorder {
	r.fatal = fatal
	return r
}

// File sets the file node the error occurred in.
func (r *ErrorRecorder) File(id int64) *ErrorRecorder {
	r.fileID = id
	return r
}

// StartPosition sets where the error span starts.
func (r *ErrorRecorder) StartPosition(line, column int32) *ErrorRecorder {
	r.startLn = line
	r.startCol = column
	return r
}

// EndPosition sets where the error span ends.
func (r *ErrorRecorder) EndPosition(line, column int32) *ErrorRecorder {
	r.endLn = line
	r.endCol = column
	return r
}

// Commit validates the record, then writes the error row and its span.
func (r *ErrorRecorder) Commit(ctx context.Context) error {
	if r.fileID == -1 {
		return sterrors.MissingField("error", "file")
	}
	if r.message == "" {
		return sterrors.MissingField("error", "message")
	}
	if r.startLn == -1 || r.startCol == -1 {
		return sterrors.MissingField("error", "start position")
	}
	if r.endLn == -1 || r.endCol == -1 {
		return sterrors.MissingField("error", "end position")
	}
	if r.startLn > r.endLn || (r.startLn == r.endLn && r.startCol >= r.endCol) {
		return sterrors.InvalidSourceRange()
	}

	id, err := r.db.store.NewElement(ctx)
	if err != nil {
		return err
	}
	if err := r.db.store.InsertError(ctx, types.Error{
		ID:      id,
		Message: r.message,
		Fatal:   r.fatal,
		Indexed: true,
	}); err != nil {
		return err
	}

	return r.db.recordSourceLocation(ctx, id, r.fileID,
		r.startLn, r.startCol, r.endLn, r.endCol, types.LocationIndexerError)
}
