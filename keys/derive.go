package keys

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// hardenedOffset marks a hardened child index; ed25519 derivation supports
// only hardened children (it has no public-key-only derivation scheme).
const hardenedOffset uint32 = 0x80000000

const masterHMACKeyEd25519 = "ed25519 seed"
const masterHMACKeySecp256k1 = "Bitcoin seed"

// hmacSHA512 is the chain-code mixing primitive shared by both curve
// derivation schemes below.
func hmacSHA512(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// Ed25519Wallet holds SLIP-0010 hardened-only master key material for the
// ed25519 curve, derived from a BIP-39 seed.
type Ed25519Wallet struct {
	masterKey   []byte
	masterChain []byte
}

func NewEd25519WalletFromSeed(seed []byte) (*Ed25519Wallet, error) {
	if len(seed) < 16 {
		return nil, errors.New("keys: seed too short")
	}
	I := hmacSHA512([]byte(masterHMACKeyEd25519), seed)
	return &Ed25519Wallet{masterKey: I[:32], masterChain: I[32:]}, nil
}

func deriveEd25519Hardened(parentKey, parentChain []byte, index uint32) (key, chain []byte, err error) {
	if index < hardenedOffset {
		index |= hardenedOffset
	}
	data := make([]byte, 1+32+4)
	copy(data[1:], parentKey)
	binary.BigEndian.PutUint32(data[33:], index)
	I := hmacSHA512(parentChain, data)
	return I[:32], I[32:], nil
}

// Derive walks the hardened path account' / index' and returns the
// resulting ed25519 key pair.
func (w *Ed25519Wallet) Derive(account, index uint32) (Ed25519PrivateKey, error) {
	k1, c1, err := deriveEd25519Hardened(w.masterKey, w.masterChain, account)
	if err != nil {
		return Ed25519PrivateKey{}, err
	}
	k2, _, err := deriveEd25519Hardened(k1, c1, index)
	if err != nil {
		return Ed25519PrivateKey{}, err
	}
	return Ed25519PrivateKey{Raw: ed25519.NewKeyFromSeed(k2)}, nil
}

// ECDSAWallet holds BIP-32-style master key material for secp256k1,
// supporting both hardened and normal (public-derivable) children.
type ECDSAWallet struct {
	masterKey   []byte
	masterChain []byte
}

func NewECDSAWalletFromSeed(seed []byte) (*ECDSAWallet, error) {
	if len(seed) < 16 {
		return nil, errors.New("keys: seed too short")
	}
	I := hmacSHA512([]byte(masterHMACKeySecp256k1), seed)
	return &ECDSAWallet{masterKey: I[:32], masterChain: I[32:]}, nil
}

func deriveSecp256k1(parentKey, parentChain []byte, index uint32) (key, chain []byte, err error) {
	var data []byte
	if index >= hardenedOffset {
		data = make([]byte, 1+32+4)
		copy(data[1:], parentKey)
	} else {
		_, pub := btcec.PrivKeyFromBytes(parentKey)
		data = make([]byte, 33+4)
		copy(data, pub.SerializeCompressed())
	}
	binary.BigEndian.PutUint32(data[len(data)-4:], index)
	I := hmacSHA512(parentChain, data)

	il := new(btcec.ModNScalar)
	if overflow := il.SetByteSlice(I[:32]); overflow {
		return nil, nil, errors.New("keys: derived scalar overflow, retry with next index")
	}
	parent := new(btcec.ModNScalar)
	parent.SetByteSlice(parentKey)
	il.Add(parent)
	childKey := il.Bytes()
	return childKey[:], I[32:], nil
}

// Derive walks account'/index' (hardened) for secp256k1, matching the
// ed25519 wallet's hardened-only path shape for API symmetry. Normal
// (non-hardened) derivation is not exposed outside this package.
func (w *ECDSAWallet) Derive(account, index uint32) (ECDSASecp256k1PrivateKey, error) {
	k1, c1, err := deriveSecp256k1(w.masterKey, w.masterChain, account|hardenedOffset)
	if err != nil {
		return ECDSASecp256k1PrivateKey{}, err
	}
	k2, _, err := deriveSecp256k1(k1, c1, index|hardenedOffset)
	if err != nil {
		return ECDSASecp256k1PrivateKey{}, err
	}
	priv, _ := btcec.PrivKeyFromBytes(k2)
	return ECDSASecp256k1PrivateKey{Raw: priv}, nil
}
