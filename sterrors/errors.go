// Package sterrors defines the structured error taxonomy shared by the
// sourcetrail library. Every failure surfaced to a caller carries a Kind so
// callers can match on the failure category with errors.Is without depending
// on message text.
package sterrors

import (
	"errors"
	"fmt"
)

// Kind represents the category of error.
type Kind int

const (
	// KindDatabase - failures propagated from the persistence backend
	KindDatabase Kind = iota
	// KindIO - file I/O failures (disk reads for file records)
	KindIO
	// KindEncode - invalid range passed to name serialization
	KindEncode
	// KindDecode - malformed serialized name or unknown persisted discriminant
	KindDecode
	// KindEmptyNameHierarchy - a name hierarchy was constructed with no elements
	KindEmptyNameHierarchy
	// KindParentNotFound - a declared parent id has no node in the database
	KindParentNotFound
	// KindFileNotFound - a file id has no file record in the database
	KindFileNotFound
	// KindInvalidSourceRange - source span ordering invariant violated
	KindInvalidSourceRange
	// KindMissingField - a recorder was committed without a required field
	KindMissingField
)

func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "DATABASE"
	case KindIO:
		return "IO"
	case KindEncode:
		return "ENCODE"
	case KindDecode:
		return "DECODE"
	case KindEmptyNameHierarchy:
		return "EMPTY_NAME_HIERARCHY"
	case KindParentNotFound:
		return "PARENT_NOT_FOUND"
	case KindFileNotFound:
		return "FILE_NOT_FOUND"
	case KindInvalidSourceRange:
		return "INVALID_SOURCE_RANGE"
	case KindMissingField:
		return "MISSING_FIELD"
	default:
		return "UNKNOWN"
	}
}

// Error is a structured error with a category and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by Kind, so errors.Is(err, &Error{Kind: k}) reports
// whether err belongs to category k regardless of message and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates an error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error with the given kind and formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a kind and message. Returns nil for a
// nil cause.
func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// IsKind reports whether err (or any error in its chain) has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Convenience constructors for the fixed taxonomy

// Database wraps a persistence backend failure.
func Database(err error, message string) *Error {
	return Wrap(err, KindDatabase, message)
}

// IO wraps a filesystem failure.
func IO(err error, message string) *Error {
	return Wrap(err, KindIO, message)
}

// Encode creates a serialization error.
func Encode(message string) *Error {
	return New(KindEncode, message)
}

// Decode creates a deserialization error.
func Decode(message string) *Error {
	return New(KindDecode, message)
}

// Decodef creates a deserialization error with formatting.
func Decodef(format string, args ...interface{}) *Error {
	return Newf(KindDecode, format, args...)
}

// EmptyNameHierarchy reports a hierarchy constructed with zero elements.
func EmptyNameHierarchy() *Error {
	return New(KindEmptyNameHierarchy, "name hierarchy must contain at least one element")
}

// ParentNotFound reports a missing parent node.
func ParentNotFound(id int64) *Error {
	return Newf(KindParentNotFound, "parent with id %d does not exist in the database", id)
}

// FileNotFound reports a missing file record.
func FileNotFound(id int64) *Error {
	return Newf(KindFileNotFound, "file with id %d does not exist in the database", id)
}

// InvalidSourceRange reports a span whose start does not precede its end.
func InvalidSourceRange() *Error {
	return New(KindInvalidSourceRange, "invalid source range")
}

// MissingField reports a recorder committed without a required field.
func MissingField(recorder, field string) *Error {
	return Newf(KindMissingField, "cannot commit %s record: missing %s", recorder, field)
}
