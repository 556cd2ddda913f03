package keys

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/hashnet-labs/hedera-core-sdk/sigmap"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// ECDSASecp256k1PublicKey is a 33-byte compressed single-curve-b public key.
type ECDSASecp256k1PublicKey struct {
	Raw *btcec.PublicKey
}

func NewECDSASecp256k1PublicKey(compressed []byte) (ECDSASecp256k1PublicKey, error) {
	pub, err := btcec.ParsePubKey(compressed)
	if err != nil {
		return ECDSASecp256k1PublicKey{}, fmt.Errorf("keys: bad secp256k1 public key: %w", err)
	}
	return ECDSASecp256k1PublicKey{Raw: pub}, nil
}

func (k ECDSASecp256k1PublicKey) Bytes() []byte {
	return k.Raw.SerializeCompressed()
}

func (k ECDSASecp256k1PublicKey) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteBytes(keyFieldECDSASecp256k1, k.Bytes())
	w.WriteNested(field, inner)
}

func (k ECDSASecp256k1PublicKey) Satisfied(bodyBytes []byte, sm *sigmap.Map, depth int) (bool, error) {
	if err := checkDepth(depth); err != nil {
		return false, err
	}
	e := sm.Find(k.Bytes())
	if e == nil {
		return false, nil
	}
	sig, err := btcecdsa.ParseDERSignature(e.Signature)
	if err != nil {
		return false, nil
	}
	digest := sha256.Sum256(bodyBytes)
	return sig.Verify(digest[:], k.Raw), nil
}

// ECDSASecp256k1PrivateKey wraps a secp256k1 private scalar for signing.
type ECDSASecp256k1PrivateKey struct {
	Raw *btcec.PrivateKey
}

func (k ECDSASecp256k1PrivateKey) PublicKey() ECDSASecp256k1PublicKey {
	return ECDSASecp256k1PublicKey{Raw: k.Raw.PubKey()}
}

// PublicKeyBytes satisfies the signer interface consumed by txbody.
func (k ECDSASecp256k1PrivateKey) PublicKeyBytes() []byte { return k.PublicKey().Bytes() }

// Sign produces a deterministic DER-encoded ECDSA signature (RFC 6979) over
// the SHA-256 digest of bodyBytes, matching btcecdsa.Sign's
// deterministic-nonce behavior.
func (k ECDSASecp256k1PrivateKey) Sign(bodyBytes []byte) []byte {
	digest := sha256.Sum256(bodyBytes)
	sig := btcecdsa.Sign(k.Raw, digest[:])
	return sig.Serialize()
}
