package keys

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"
)

// Mnemonic wraps a recovery phrase along with which word-count variant it
// is, since the legacy 22-word scheme uses a different checksum/seed
// derivation than standard BIP-39.
type Mnemonic struct {
	Words   []string
	Variant MnemonicVariant
}

type MnemonicVariant int

const (
	Variant12 MnemonicVariant = 12
	Variant22 MnemonicVariant = 22
	Variant24 MnemonicVariant = 24
)

// GenerateMnemonic produces a fresh 12- or 24-word BIP-39 phrase.
func GenerateMnemonic(variant MnemonicVariant) (Mnemonic, error) {
	var entropyBits int
	switch variant {
	case Variant12:
		entropyBits = 128
	case Variant24:
		entropyBits = 256
	default:
		return Mnemonic{}, fmt.Errorf("keys: GenerateMnemonic only supports 12/24-word variants, got %d", variant)
	}
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return Mnemonic{}, fmt.Errorf("keys: entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return Mnemonic{}, fmt.Errorf("keys: mnemonic: %w", err)
	}
	return Mnemonic{Words: strings.Fields(phrase), Variant: variant}, nil
}

// ParseMnemonic validates phrase and classifies it by word count. The
// 12/24-word variants are validated via BIP-39's checksum; the legacy
// 22-word variant (carried forward from the original system, not covered
// by go-bip39) uses BIP-39's English word list and checks that the last
// word's index equals the sum of the first 21 word indices mod 2048.
func ParseMnemonic(phrase string) (Mnemonic, error) {
	words := strings.Fields(phrase)
	switch len(words) {
	case 12, 24:
		if !bip39.IsMnemonicValid(phrase) {
			return Mnemonic{}, errors.New("keys: invalid BIP-39 checksum")
		}
		return Mnemonic{Words: words, Variant: MnemonicVariant(len(words))}, nil
	case 22:
		if err := validateLegacy22(words); err != nil {
			return Mnemonic{}, err
		}
		return Mnemonic{Words: words, Variant: Variant22}, nil
	default:
		return Mnemonic{}, fmt.Errorf("keys: unsupported mnemonic length %d (want 12, 22, or 24)", len(words))
	}
}

// ToSeed derives the BIP-39 seed for 12/24-word mnemonics. The 22-word
// legacy variant is not BIP-39 and is seeded by LegacySeed instead.
func (m Mnemonic) ToSeed(passphrase string) ([]byte, error) {
	if m.Variant == Variant22 {
		return nil, errors.New("keys: use LegacySeed for 22-word mnemonics")
	}
	return bip39.NewSeedWithErrorChecking(strings.Join(m.Words, " "), passphrase)
}

// legacyWordIndex returns word's position in bip39's 2048-word English
// list, which the legacy checksum uses; the list is reused rather than
// embedding a duplicate copy.
func legacyWordIndex(word string) (int, bool) {
	list := bip39.GetWordList()
	for i, w := range list {
		if w == word {
			return i, true
		}
	}
	return 0, false
}

// validateLegacy22 checks that every word is in the list and that the
// trailing word matches a checksum of the first 21 word indices' sum mod
// the word-list size, mirroring the original system's lightweight legacy
// check.
func validateLegacy22(words []string) error {
	if len(words) != 22 {
		return fmt.Errorf("keys: legacy mnemonic must have 22 words, got %d", len(words))
	}
	indices := make([]int, len(words))
	for i, w := range words {
		idx, ok := legacyWordIndex(w)
		if !ok {
			return fmt.Errorf("keys: word %q is not in the legacy word list", w)
		}
		indices[i] = idx
	}
	sum := 0
	for _, idx := range indices[:21] {
		sum += idx
	}
	want := sum % len(bip39.GetWordList())
	if indices[21] != want {
		return errors.New("keys: legacy mnemonic checksum mismatch")
	}
	return nil
}

// LegacySeed derives a seed for a 22-word legacy mnemonic by stretching its
// space-joined words, salted with "hedera" plus the passphrase, through
// PBKDF2 (see passphrase.go),
// since the legacy scheme predates BIP-39 seed derivation.
func (m Mnemonic) LegacySeed(passphrase string) ([]byte, error) {
	if m.Variant != Variant22 {
		return nil, errors.New("keys: LegacySeed only applies to 22-word mnemonics")
	}
	return StretchPassphrase([]byte(strings.Join(m.Words, " ")), []byte("hedera"+passphrase), 2048, 64)
}

// randomEntropy returns n cryptographically-random bytes, used by callers
// building a non-standard-length mnemonic entropy pool.
func randomEntropy(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
