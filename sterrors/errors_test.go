package sterrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := IO(cause, "write project file")

	assert.Equal(t, "write project file: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesByKind(t *testing.T) {
	err := ParentNotFound(12)

	assert.True(t, errors.Is(err, &Error{Kind: KindParentNotFound}))
	assert.False(t, errors.Is(err, &Error{Kind: KindFileNotFound}))
}

func TestIsKindWalksChain(t *testing.T) {
	inner := Decode("bad discriminant")
	wrapped := fmt.Errorf("loading node: %w", inner)

	assert.True(t, IsKind(wrapped, KindDecode))
	assert.False(t, IsKind(wrapped, KindDatabase))
	assert.False(t, IsKind(errors.New("plain"), KindDecode))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindDatabase, "no-op"))
}

func TestConstructorMessages(t *testing.T) {
	assert.Equal(t,
		"parent with id 7 does not exist in the database",
		ParentNotFound(7).Error())
	assert.Equal(t,
		"cannot commit error record: missing message",
		MissingField("error", "message").Error())
	assert.Equal(t, "invalid source range", InvalidSourceRange().Error())
}
