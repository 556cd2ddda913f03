// Package wire implements the length-prefixed tag/value binary codec used
// to serialize transaction and query bodies. The wire format is
// protobuf-compatible: a field is encoded as a varint tag followed by a
// payload whose shape depends on the field's wire type.
package wire

import "fmt"

// WireType identifies how a field's payload is encoded on the wire.
type WireType uint8

const (
	Varint          WireType = 0
	Fixed64         WireType = 1
	LengthDelimited WireType = 2
	Fixed32         WireType = 5
)

// Tag combines a field number and wire type into the varint written before
// every field's payload.
type Tag struct {
	Field uint32
	Type  WireType
}

func (t Tag) encode() uint64 {
	return uint64(t.Field)<<3 | uint64(t.Type)
}

func decodeTag(v uint64) (Tag, error) {
	wt := WireType(v & 0x7)
	switch wt {
	case Varint, Fixed64, LengthDelimited, Fixed32:
	default:
		return Tag{}, fmt.Errorf("wire: reserved wire type %d", wt)
	}
	return Tag{Field: uint32(v >> 3), Type: wt}, nil
}

func (t Tag) String() string {
	return fmt.Sprintf("field=%d type=%d", t.Field, t.Type)
}
