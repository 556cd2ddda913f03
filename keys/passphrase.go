package keys

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PassphraseAlgorithm identifies which PBKDF2 parameterization produced a
// stretched key, since the legacy mnemonic format and the BIP-39 format
// historically used different iteration counts and hash functions.
type PassphraseAlgorithm int

const (
	// AlgorithmLegacy matches the original system's lightweight
	// passphrase stretch: 2,048 rounds of PBKDF2-HMAC-SHA512.
	AlgorithmLegacy PassphraseAlgorithm = iota
	// AlgorithmStrong is a higher-cost variant for operator key stores:
	// 10,000 rounds of PBKDF2-HMAC-SHA256.
	AlgorithmStrong
)

// StretchPassphrase runs PBKDF2-HMAC-SHA512 over password/salt for the
// given iteration count, producing keyLen bytes of key material.
func StretchPassphrase(password, salt []byte, iterations, keyLen int) ([]byte, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("keys: iterations must be positive, got %d", iterations)
	}
	if keyLen <= 0 {
		return nil, fmt.Errorf("keys: keyLen must be positive, got %d", keyLen)
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, sha512.New), nil
}

// DeriveKeystoreKey stretches a user-supplied passphrase into symmetric
// key material suitable for encrypting a serialized private key on disk,
// mirroring the two iteration/hash parameterizations the original wallet
// format supports.
func DeriveKeystoreKey(passphrase string, salt []byte, algorithm PassphraseAlgorithm) ([]byte, error) {
	switch algorithm {
	case AlgorithmLegacy:
		return pbkdf2.Key([]byte(passphrase), salt, 2048, 32, sha512.New), nil
	case AlgorithmStrong:
		return pbkdf2.Key([]byte(passphrase), salt, 10000, 32, sha256.New), nil
	default:
		return nil, fmt.Errorf("keys: unknown passphrase algorithm %d", algorithm)
	}
}
