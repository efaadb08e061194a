package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNameHierarchyRejectsEmpty(t *testing.T) {
	_, err := NewNameHierarchy(DelimiterCxx, nil)
	assert.Error(t, err)

	_, err = NewNameHierarchy(DelimiterCxx, []NameElement{})
	assert.Error(t, err)
}

func TestSerializeName(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		elements  []NameElement
		want      string
	}{
		{
			name:      "single plain name",
			delimiter: DelimiterCxx,
			elements:  []NameElement{{Name: "Foo"}},
			want:      "::\tmFoo\ts\tp",
		},
		{
			name:      "prefix and postfix",
			delimiter: DelimiterCxx,
			elements:  []NameElement{{Prefix: "void", Name: "run", Postfix: "()"}},
			want:      "::\tmrun\tsvoid\tp()",
		},
		{
			name:      "nested",
			delimiter: DelimiterCxx,
			elements:  []NameElement{{Name: "outer"}, {Name: "inner"}},
			want:      "::\tmouter\ts\tp\tninner\ts\tp",
		},
		{
			name:      "java delimiter",
			delimiter: DelimiterJava,
			elements:  []NameElement{{Name: "com"}, {Name: "example"}},
			want:      ".\tmcom\ts\tp\tnexample\ts\tp",
		},
		{
			name:      "file path",
			delimiter: DelimiterFile,
			elements:  []NameElement{{Name: "src/main.c"}},
			want:      "/\tmsrc/main.c\ts\tp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewNameHierarchy(tt.delimiter, tt.elements)
			require.NoError(t, err)

			got, err := h.SerializeName()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeRange(t *testing.T) {
	h, err := NewNameHierarchy(DelimiterCxx, []NameElement{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	})
	require.NoError(t, err)

	got, err := h.SerializeRange(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "::\tma\ts\tp", got)

	got, err = h.SerializeRange(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "::\tma\ts\tp\tnb\ts\tp", got)

	got, err = h.SerializeRange(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "::\tmb\ts\tp\tnc\ts\tp", got)
}

func TestSerializeRangeBounds(t *testing.T) {
	h, err := NewNameHierarchy(DelimiterCxx, []NameElement{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end int
	}{
		{"start equals end", 1, 1},
		{"start after end", 2, 1},
		{"end past size", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.SerializeRange(tt.start, tt.end)
			assert.Error(t, err)
		})
	}
}

func TestDeserializeName(t *testing.T) {
	h, err := DeserializeName("::\tmouter\ts\tp\tninner\tsvoid\tp()")
	require.NoError(t, err)

	assert.Equal(t, DelimiterCxx, h.Delimiter())
	require.Equal(t, 2, h.Size())
	assert.Equal(t, NameElement{Name: "outer"}, h.Elements()[0])
	assert.Equal(t, NameElement{Prefix: "void", Name: "inner", Postfix: "()"}, h.Elements()[1])
}

func TestDeserializeNameMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no meta marker", "Foo"},
		{"missing part marker", "::\tmFoo"},
		{"missing signature marker", "::\tmFoo\tsvoid"},
		{"second element malformed", "::\tmFoo\ts\tp\tnBar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeserializeName(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	original, err := NewNameHierarchy(DelimiterJava, []NameElement{
		{Name: "com"},
		{Name: "example"},
		{Prefix: "public", Name: "Main", Postfix: "<T>"},
	})
	require.NoError(t, err)

	serialized, err := original.SerializeName()
	require.NoError(t, err)

	decoded, err := DeserializeName(serialized)
	require.NoError(t, err)

	assert.Equal(t, original.Delimiter(), decoded.Delimiter())
	assert.Equal(t, original.Elements(), decoded.Elements())
}

func TestPushAndExtend(t *testing.T) {
	h, err := NewNameHierarchy(DelimiterCxx, []NameElement{{Name: "root"}})
	require.NoError(t, err)

	h.Push(NameElement{Name: "child"})
	assert.Equal(t, 2, h.Size())

	h.Extend([]NameElement{{Name: "a"}, {Name: "b"}})
	assert.Equal(t, 4, h.Size())
	assert.Equal(t, "b", h.Elements()[3].Name)
}
