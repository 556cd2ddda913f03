// Package rlp implements the recursive-length-prefix binary encoding used
// for external-chain transaction envelopes. There are two item kinds:
// Item (a raw byte string) and List (an ordered sequence of items).
package rlp

import (
	"bytes"
	"fmt"
	"math/big"
)

// Item is either a raw string (leaf) or a List (internal node). The
// unexported isList flag, set only by List, marks a list; a list may have
// no children.
type Item struct {
	Bytes    []byte
	Children []Item
	isList   bool
}

// String constructs a leaf item wrapping b.
func String(b []byte) Item { return Item{Bytes: b} }

// List constructs an internal node with the given children.
func List(children ...Item) Item { return Item{Children: children, isList: true} }

// IsList reports whether item is a list node.
func (it Item) IsList() bool { return it.isList }

// BigInt encodes a non-negative integer as its minimal big-endian string
// item; zero encodes to the empty string, per the codec's integer rule.
func BigInt(v *big.Int) Item {
	if v == nil || v.Sign() == 0 {
		return String(nil)
	}
	return String(v.Bytes())
}

// Uint64 encodes u the same way BigInt does.
func Uint64(u uint64) Item {
	if u == 0 {
		return String(nil)
	}
	return BigInt(new(big.Int).SetUint64(u))
}

const (
	strHeaderShort byte = 0x80
	strHeaderLong  byte = 0xb7
	listHeaderBase byte = 0xc0
	listHeaderLong byte = 0xf7
)

// Encode serializes item into its RLP representation.
func Encode(item Item) []byte {
	var buf bytes.Buffer
	encodeInto(&buf, item)
	return buf.Bytes()
}

func encodeInto(buf *bytes.Buffer, item Item) {
	if !item.isList {
		encodeString(buf, item.Bytes)
		return
	}
	var payload bytes.Buffer
	for _, c := range item.Children {
		encodeInto(&payload, c)
	}
	writeListHeader(buf, payload.Len())
	buf.Write(payload.Bytes())
}

func encodeString(buf *bytes.Buffer, b []byte) {
	if len(b) == 1 && b[0] < 0x80 {
		buf.WriteByte(b[0])
		return
	}
	if len(b) <= 55 {
		buf.WriteByte(strHeaderShort + byte(len(b)))
		buf.Write(b)
		return
	}
	lenBytes := minimalBigEndian(uint64(len(b)))
	buf.WriteByte(strHeaderLong + byte(len(lenBytes)))
	buf.Write(lenBytes)
	buf.Write(b)
}

func writeListHeader(buf *bytes.Buffer, payloadLen int) {
	if payloadLen <= 55 {
		buf.WriteByte(listHeaderBase + byte(payloadLen))
		return
	}
	lenBytes := minimalBigEndian(uint64(payloadLen))
	buf.WriteByte(listHeaderLong + byte(len(lenBytes)))
	buf.Write(lenBytes)
}

func minimalBigEndian(v uint64) []byte {
	if v == 0 {
		return []byte{0}
	}
	var tmp [8]byte
	for i := 7; i >= 0; i-- {
		tmp[i] = byte(v)
		v >>= 8
	}
	i := 0
	for i < 7 && tmp[i] == 0 {
		i++
	}
	return tmp[i:]
}

// Decode parses a single RLP item from buf, requiring that it consume the
// entire input. Truncated input, trailing bytes, and non-minimal length
// encodings are all rejected.
func Decode(buf []byte) (Item, error) {
	item, rest, err := decodeOne(buf)
	if err != nil {
		return Item{}, err
	}
	if len(rest) != 0 {
		return Item{}, fmt.Errorf("rlp: %d trailing bytes after top-level item", len(rest))
	}
	return item, nil
}

func decodeOne(buf []byte) (Item, []byte, error) {
	if len(buf) == 0 {
		return Item{}, nil, fmt.Errorf("rlp: unexpected end of input")
	}
	b0 := buf[0]
	switch {
	case b0 < 0x80:
		return String([]byte{b0}), buf[1:], nil

	case b0 <= strHeaderLong: // short string, 0x80..0xb7
		n := int(b0 - strHeaderShort)
		if n == 1 {
			// A single byte < 0x80 must use the single-byte form, not
			// the short-string form, to keep the encoding minimal.
			if len(buf) < 2 {
				return Item{}, nil, fmt.Errorf("rlp: truncated short string")
			}
			if buf[1] < 0x80 {
				return Item{}, nil, fmt.Errorf("rlp: non-minimal encoding of single byte %#x", buf[1])
			}
		}
		if len(buf) < 1+n {
			return Item{}, nil, fmt.Errorf("rlp: truncated short string")
		}
		return String(append([]byte(nil), buf[1:1+n]...)), buf[1+n:], nil

	case b0 < listHeaderBase: // long string, 0xb8..0xbf
		k := int(b0 - strHeaderLong)
		n, rest, err := readLength(buf[1:], k)
		if err != nil {
			return Item{}, nil, err
		}
		if n <= 55 {
			return Item{}, nil, fmt.Errorf("rlp: non-minimal long-string length encoding")
		}
		if len(rest) < n {
			return Item{}, nil, fmt.Errorf("rlp: truncated long string")
		}
		return String(append([]byte(nil), rest[:n]...)), rest[n:], nil

	case b0 <= listHeaderLong: // short list, 0xc0..0xf7
		n := int(b0 - listHeaderBase)
		if len(buf) < 1+n {
			return Item{}, nil, fmt.Errorf("rlp: truncated short list")
		}
		return decodeListPayload(buf[1:1+n], buf[1+n:])

	default: // long list, 0xf8..0xff
		k := int(b0 - listHeaderLong)
		n, rest, err := readLength(buf[1:], k)
		if err != nil {
			return Item{}, nil, err
		}
		if n <= 55 {
			return Item{}, nil, fmt.Errorf("rlp: non-minimal long-list length encoding")
		}
		if len(rest) < n {
			return Item{}, nil, fmt.Errorf("rlp: truncated long list")
		}
		return decodeListPayload(rest[:n], rest[n:])
	}
}

func readLength(buf []byte, k int) (int, []byte, error) {
	if k == 0 || k > 8 {
		return 0, nil, fmt.Errorf("rlp: invalid length byte-count %d", k)
	}
	if len(buf) < k {
		return 0, nil, fmt.Errorf("rlp: truncated length prefix")
	}
	if buf[0] == 0 {
		return 0, nil, fmt.Errorf("rlp: non-minimal length prefix (leading zero)")
	}
	var n uint64
	for i := 0; i < k; i++ {
		n = n<<8 | uint64(buf[i])
	}
	return int(n), buf[k:], nil
}

func decodeListPayload(payload, rest []byte) (Item, []byte, error) {
	var children []Item
	for len(payload) > 0 {
		var c Item
		var err error
		c, payload, err = decodeOne(payload)
		if err != nil {
			return Item{}, nil, err
		}
		children = append(children, c)
	}
	if children == nil {
		children = []Item{}
	}
	return List(children...), rest, nil
}
