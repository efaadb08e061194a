package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindDiscriminantsAreStable(t *testing.T) {
	// persisted values; the GUI depends on these exact numbers
	assert.Equal(t, int32(1), int32(NodeKindSymbol))
	assert.Equal(t, int32(1<<7), int32(NodeKindClass))
	assert.Equal(t, int32(1<<18), int32(NodeKindFile))
	assert.Equal(t, int32(1<<20), int32(NodeKindUnion))

	assert.Equal(t, int32(0), int32(EdgeKindUndefined))
	assert.Equal(t, int32(1), int32(EdgeKindMember))
	assert.Equal(t, int32(1<<12), int32(EdgeKindAnnotationUsage))

	assert.Equal(t, int32(2), int32(DefinitionExplicit))
	assert.Equal(t, int32(9), int32(LocationUnsolved))
	assert.Equal(t, int32(6), int32(AccessTypeParameter))
	assert.Equal(t, int32(1), int32(ElementComponentIsAmbiguous))
}

func TestKindFromIntRoundTrip(t *testing.T) {
	node, err := NodeKindFromInt(int32(NodeKindMethod))
	require.NoError(t, err)
	assert.Equal(t, NodeKindMethod, node)

	edge, err := EdgeKindFromInt(int32(EdgeKindCall))
	require.NoError(t, err)
	assert.Equal(t, EdgeKindCall, edge)

	def, err := DefinitionKindFromInt(0)
	require.NoError(t, err)
	assert.Equal(t, DefinitionNone, def)

	loc, err := LocationKindFromInt(4)
	require.NoError(t, err)
	assert.Equal(t, LocationSignature, loc)

	access, err := AccessKindFromInt(3)
	require.NoError(t, err)
	assert.Equal(t, AccessPrivate, access)

	comp, err := ElementComponentKindFromInt(1)
	require.NoError(t, err)
	assert.Equal(t, ElementComponentIsAmbiguous, comp)
}

func TestKindFromIntRejectsUnknown(t *testing.T) {
	_, err := NodeKindFromInt(3)
	assert.Error(t, err)

	_, err = NodeKindFromInt(1 << 21)
	assert.Error(t, err)

	_, err = EdgeKindFromInt(5)
	assert.Error(t, err)

	_, err = DefinitionKindFromInt(3)
	assert.Error(t, err)

	_, err = LocationKindFromInt(10)
	assert.Error(t, err)

	_, err = AccessKindFromInt(7)
	assert.Error(t, err)

	_, err = ElementComponentKindFromInt(2)
	assert.Error(t, err)
}

func TestSourceLocationRangeInvariant(t *testing.T) {
	tests := []struct {
		name                                 string
		startLine, startCol, endLine, endCol int32
		ok                                   bool
	}{
		{"multi line", 1, 5, 3, 2, true},
		{"same line forward", 5, 10, 5, 11, true},
		{"same line zero width", 5, 10, 5, 10, false},
		{"same line backward", 5, 11, 5, 10, false},
		{"end line before start", 4, 0, 3, 0, false},
		{"column zero start", 1, 0, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSourceLocation(0, 1, tt.startLine, tt.startCol, tt.endLine, tt.endCol, LocationToken)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
