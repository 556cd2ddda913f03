package rlp

import (
	"bytes"
	"math/rand"
	"testing"
)

func randItem(r *rand.Rand, depth int) Item {
	if depth <= 0 || r.Intn(3) == 0 {
		n := r.Intn(70)
		b := make([]byte, n)
		r.Read(b)
		return String(b)
	}
	n := r.Intn(5)
	children := make([]Item, n)
	for i := range children {
		children[i] = randItem(r, depth-1)
	}
	return List(children...)
}

func equalItem(a, b Item) bool {
	if a.isList != b.isList {
		return false
	}
	if !a.isList {
		return bytes.Equal(a.Bytes, b.Bytes)
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !equalItem(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func TestRoundTripRandomShapes(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		item := randItem(r, 6)
		enc := Encode(item)
		if len(enc) > 64*1024 {
			continue // bound from the testable property; regenerate-by-skip
		}
		got, err := Decode(enc)
		if err != nil {
			t.Fatalf("decode failed: %v (encoded %x)", err, enc)
		}
		if !equalItem(item, got) {
			t.Fatalf("round trip mismatch for %+v", item)
		}
	}
}

func TestSingleByteForm(t *testing.T) {
	enc := Encode(String([]byte{0x42}))
	if !bytes.Equal(enc, []byte{0x42}) {
		t.Fatalf("single byte <0x80 should encode to itself, got %x", enc)
	}
}

func TestEmptyStringAndList(t *testing.T) {
	if enc := Encode(String(nil)); !bytes.Equal(enc, []byte{0x80}) {
		t.Fatalf("empty string should encode to 0x80, got %x", enc)
	}
	if enc := Encode(List()); !bytes.Equal(enc, []byte{0xc0}) {
		t.Fatalf("empty list should encode to 0xc0, got %x", enc)
	}
}

func TestLongStringHeader(t *testing.T) {
	b := bytes.Repeat([]byte{0x41}, 60)
	enc := Encode(String(b))
	if enc[0] != 0xb7+1 { // length fits in one byte (60)
		t.Fatalf("unexpected long-string header byte %#x", enc[0])
	}
	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got.Bytes, b) {
		t.Fatalf("payload mismatch")
	}
}

func TestRejectsNonMinimalSingleByte(t *testing.T) {
	// 0x81 0x00 encodes the single byte 0x00 using the short-string form
	// instead of the required single-byte form.
	if _, err := Decode([]byte{0x81, 0x00}); err == nil {
		t.Fatal("expected rejection of non-minimal single-byte encoding")
	}
}

func TestRejectsNonMinimalLength(t *testing.T) {
	// Long-string header claiming a 1-byte length of 10 (<=55), which
	// should have used the short-string form instead.
	if _, err := Decode([]byte{0xb8, 0x0a}); err == nil {
		t.Fatal("expected rejection of non-minimal long-string length")
	}
}

func TestRejectsTruncatedInput(t *testing.T) {
	// Short-string header claiming 5 bytes but supplying none.
	if _, err := Decode([]byte{0x85}); err == nil {
		t.Fatal("expected rejection of truncated input")
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := append(Encode(String([]byte("hi"))), 0x00)
	if _, err := Decode(enc); err == nil {
		t.Fatal("expected rejection of trailing bytes")
	}
}

func TestUint64ZeroIsEmptyString(t *testing.T) {
	item := Uint64(0)
	if item.IsList() || len(item.Bytes) != 0 {
		t.Fatalf("Uint64(0) should be the empty string item")
	}
}
