package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

// Writer accumulates an append-only buffer of encoded fields. A Writer's
// zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated buffer. The slice is owned by the caller.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) writeTag(field uint32, wt WireType) {
	w.writeVarintRaw(Tag{Field: field, Type: wt}.encode())
}

// writeVarintRaw appends the unsigned LEB128 encoding of v.
func (w *Writer) writeVarintRaw(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WriteVarint writes field as an unsigned varint field, unless v is the
// zero value (default fields are omitted per the codec's determinism rule).
func (w *Writer) WriteVarint(field uint32, v uint64) {
	if v == 0 {
		return
	}
	w.writeTag(field, Varint)
	w.writeVarintRaw(v)
}

// WriteBool writes a boolean as a varint 0/1 field, omitted when false.
func (w *Writer) WriteBool(field uint32, v bool) {
	if !v {
		return
	}
	w.writeTag(field, Varint)
	w.writeVarintRaw(1)
}

// zigzag maps a signed integer onto an unsigned one so small magnitude
// values (positive or negative) encode to few bytes.
func zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// WriteSint writes field as a zig-zag encoded signed varint, unless v == 0.
func (w *Writer) WriteSint(field uint32, v int64) {
	if v == 0 {
		return
	}
	w.writeTag(field, Varint)
	w.writeVarintRaw(zigzag(v))
}

// WriteFixed32 writes field as a little-endian fixed 4-byte value.
func (w *Writer) WriteFixed32(field uint32, v uint32) {
	if v == 0 {
		return
	}
	w.writeTag(field, Fixed32)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteFixed64 writes field as a little-endian fixed 8-byte value.
func (w *Writer) WriteFixed64(field uint32, v uint64) {
	if v == 0 {
		return
	}
	w.writeTag(field, Fixed64)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteBytes writes field as a length-delimited byte string, unless empty.
func (w *Writer) WriteBytes(field uint32, v []byte) {
	if len(v) == 0 {
		return
	}
	w.writeTag(field, LengthDelimited)
	w.writeVarintRaw(uint64(len(v)))
	w.buf = append(w.buf, v...)
}

// WriteString writes field as a length-delimited UTF-8 string, unless
// empty. Non-UTF-8 input is a programmer error and panics, matching the
// codec's determinism invariant that strings are validated UTF-8.
func (w *Writer) WriteString(field uint32, v string) {
	if v == "" {
		return
	}
	if !utf8.ValidString(v) {
		panic("wire: string field is not valid UTF-8")
	}
	w.WriteBytes(field, []byte(v))
}

// WriteNested measures child's encoded bytes and length-prefixes them into
// w under field. Pass a Writer built independently for the nested message.
func (w *Writer) WriteNested(field uint32, child *Writer) {
	if child == nil || child.Len() == 0 {
		return
	}
	w.WriteBytes(field, child.Bytes())
}

// WritePackedVarint packs a repeated scalar varint field into a single
// length-delimited blob, per the codec's packed-repeated-field rule.
func (w *Writer) WritePackedVarint(field uint32, vs []uint64) {
	if len(vs) == 0 {
		return
	}
	inner := NewWriter()
	for _, v := range vs {
		inner.writeVarintRaw(v)
	}
	w.writeTag(field, LengthDelimited)
	w.writeVarintRaw(uint64(inner.Len()))
	w.buf = append(w.buf, inner.Bytes()...)
}
