package keys

import (
	"crypto/ed25519"
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/sigmap"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// keyFieldEd25519 and its siblings below are the tag numbers of the
// tagged-union Key wire message; one and only one is ever set.
const (
	keyFieldEd25519               = 1
	keyFieldECDSASecp256k1        = 2
	keyFieldKeyList               = 3
	keyFieldThreshold             = 4
	keyFieldContractID            = 5
	keyFieldDelegatableContractID = 6
)

// Ed25519PublicKey is a 32-byte single-curve-a public key.
type Ed25519PublicKey struct {
	Raw ed25519.PublicKey
}

func NewEd25519PublicKey(raw []byte) (Ed25519PublicKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return Ed25519PublicKey{}, fmt.Errorf("keys: ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return Ed25519PublicKey{Raw: append(ed25519.PublicKey(nil), raw...)}, nil
}

// Bytes returns the raw 32-byte public key.
func (k Ed25519PublicKey) Bytes() []byte { return k.Raw }

func (k Ed25519PublicKey) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteBytes(keyFieldEd25519, k.Raw)
	w.WriteNested(field, inner)
}

func (k Ed25519PublicKey) Satisfied(bodyBytes []byte, sm *sigmap.Map, depth int) (bool, error) {
	if err := checkDepth(depth); err != nil {
		return false, err
	}
	e := sm.Find(k.Raw)
	if e == nil {
		return false, nil
	}
	return ed25519.Verify(k.Raw, bodyBytes, e.Signature), nil
}

// Ed25519PrivateKey wraps a 64-byte seed+public private key for signing.
type Ed25519PrivateKey struct {
	Raw ed25519.PrivateKey
}

func (k Ed25519PrivateKey) PublicKey() Ed25519PublicKey {
	pub := k.Raw.Public().(ed25519.PublicKey)
	return Ed25519PublicKey{Raw: pub}
}

// PublicKeyBytes satisfies the signer interface consumed by txbody.
func (k Ed25519PrivateKey) PublicKeyBytes() []byte { return k.PublicKey().Bytes() }

// Sign produces a deterministic raw signature over bodyBytes.
func (k Ed25519PrivateKey) Sign(bodyBytes []byte) []byte {
	return ed25519.Sign(k.Raw, bodyBytes)
}
