package types

import (
	"strings"

	"github.com/xorpse/sourcetrail/sterrors"
)

// Delimiters used for display between hierarchy levels. The delimiter is
// stored as part of the serialized name.
const (
	DelimiterFile    = "/"
	DelimiterCxx     = "::"
	DelimiterJava    = "."
	DelimiterUnknown = "@"
)

// Control markers of the serialized name format. Element text containing any
// of these markers cannot round-trip; the format performs no escaping.
const (
	metaDelimiter      = "\tm"
	nameDelimiter      = "\tn"
	partDelimiter      = "\ts"
	signatureDelimiter = "\tp"
)

// NameElement is one segment of a qualified name. All fields are optional
// display fragments; none is validated.
type NameElement struct {
	Prefix  string
	Name    string
	Postfix string
}

// NameHierarchy is an ordered, non-empty sequence of name elements joined by
// a delimiter for display. Only its serialized text form is persisted.
type NameHierarchy struct {
	delimiter string
	elements  []NameElement
}

// NewNameHierarchy builds a hierarchy from at least one element.
func NewNameHierarchy(delimiter string, elements []NameElement) (*NameHierarchy, error) {
	if len(elements) == 0 {
		return nil, sterrors.EmptyNameHierarchy()
	}
	h := &NameHierarchy{delimiter: delimiter}
	h.elements = append(h.elements, elements...)
	return h, nil
}

// Delimiter returns the display delimiter.
func (h *NameHierarchy) Delimiter() string {
	return h.delimiter
}

// Size returns the number of elements.
func (h *NameHierarchy) Size() int {
	return len(h.elements)
}

// Elements returns the elements in order.
func (h *NameHierarchy) Elements() []NameElement {
	return h.elements
}

// Push appends one element.
func (h *NameHierarchy) Push(e NameElement) {
	h.elements = append(h.elements, e)
}

// Extend appends elements in order.
func (h *NameHierarchy) Extend(elements []NameElement) {
	h.elements = append(h.elements, elements...)
}

// SerializeRange encodes elements [start, end). It fails when the range is
// empty or exceeds the hierarchy size.
func (h *NameHierarchy) SerializeRange(start, end int) (string, error) {
	if start >= end || end > len(h.elements) {
		return "", sterrors.Encode("invalid serialization range")
	}

	var sb strings.Builder
	sb.WriteString(h.delimiter)
	sb.WriteString(metaDelimiter)
	for i, e := range h.elements[start:end] {
		if i > 0 {
			sb.WriteString(nameDelimiter)
		}
		sb.WriteString(e.Name)
		sb.WriteString(partDelimiter)
		sb.WriteString(e.Prefix)
		sb.WriteString(signatureDelimiter)
		sb.WriteString(e.Postfix)
	}
	return sb.String(), nil
}

// SerializeName encodes the full hierarchy.
func (h *NameHierarchy) SerializeName() (string, error) {
	return h.SerializeRange(0, h.Size())
}

// DeserializeName parses a serialized name back into a hierarchy. It is the
// exact inverse of SerializeName for element text free of control markers.
func DeserializeName(serialized string) (*NameHierarchy, error) {
	idx := strings.Index(serialized, metaDelimiter)
	if idx < 0 {
		return nil, sterrors.Decode("serialized name has no meta delimiter")
	}

	delimiter := serialized[:idx]
	var elements []NameElement

	for _, part := range strings.Split(serialized[idx+len(metaDelimiter):], nameDelimiter) {
		segments := strings.SplitN(part, partDelimiter, 2)
		if len(segments) < 2 {
			return nil, sterrors.Decode("serialized name element has no part delimiter")
		}

		rest := strings.SplitN(segments[1], signatureDelimiter, 2)
		if len(rest) < 2 {
			return nil, sterrors.Decode("serialized name element has no signature delimiter")
		}

		elements = append(elements, NameElement{
			Prefix:  rest[0],
			Name:    segments[0],
			Postfix: rest[1],
		})
	}

	return NewNameHierarchy(delimiter, elements)
}
