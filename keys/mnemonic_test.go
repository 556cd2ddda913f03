package keys_test

import (
	"testing"

	"github.com/hashnet-labs/hedera-core-sdk/keys"
)

func TestGenerateAndParseMnemonicRoundTrip(t *testing.T) {
	cases := []keys.MnemonicVariant{keys.Variant12, keys.Variant24}
	for _, variant := range cases {
		m, err := keys.GenerateMnemonic(variant)
		if err != nil {
			t.Fatalf("GenerateMnemonic(%d): %v", variant, err)
		}
		if len(m.Words) != int(variant) {
			t.Fatalf("expected %d words, got %d", variant, len(m.Words))
		}

		phrase := ""
		for i, w := range m.Words {
			if i > 0 {
				phrase += " "
			}
			phrase += w
		}

		parsed, err := keys.ParseMnemonic(phrase)
		if err != nil {
			t.Fatalf("ParseMnemonic round trip: %v", err)
		}
		if parsed.Variant != variant {
			t.Fatalf("expected variant %d, got %d", variant, parsed.Variant)
		}

		seed, err := m.ToSeed("")
		if err != nil {
			t.Fatalf("ToSeed: %v", err)
		}
		if len(seed) != 64 {
			t.Fatalf("expected 64-byte BIP-39 seed, got %d", len(seed))
		}
	}
}

func TestParseMnemonicRejectsWrongLength(t *testing.T) {
	if _, err := keys.ParseMnemonic("only three words here"); err == nil {
		t.Fatal("expected error for unsupported word count")
	}
}

func TestDeriveFromSeedIsDeterministic(t *testing.T) {
	m, err := keys.GenerateMnemonic(keys.Variant24)
	if err != nil {
		t.Fatalf("GenerateMnemonic: %v", err)
	}
	seed, err := m.ToSeed("")
	if err != nil {
		t.Fatalf("ToSeed: %v", err)
	}

	w1, err := keys.NewEd25519WalletFromSeed(seed)
	if err != nil {
		t.Fatalf("NewEd25519WalletFromSeed: %v", err)
	}
	w2, err := keys.NewEd25519WalletFromSeed(seed)
	if err != nil {
		t.Fatalf("NewEd25519WalletFromSeed: %v", err)
	}

	k1, err := w1.Derive(0, 0)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	k2, err := w2.Derive(0, 0)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if string(k1.Raw) != string(k2.Raw) {
		t.Fatal("expected deterministic derivation from the same seed")
	}

	k3, err := w1.Derive(0, 1)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if string(k1.Raw) == string(k3.Raw) {
		t.Fatal("expected distinct keys for distinct indices")
	}
}

func TestECDSADeriveIsDeterministicAndDistinct(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	w1, err := keys.NewECDSAWalletFromSeed(seed)
	if err != nil {
		t.Fatalf("NewECDSAWalletFromSeed: %v", err)
	}
	w2, err := keys.NewECDSAWalletFromSeed(seed)
	if err != nil {
		t.Fatalf("NewECDSAWalletFromSeed: %v", err)
	}

	k1, err := w1.Derive(0, 0)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	k2, err := w2.Derive(0, 0)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if string(k1.Raw.Serialize()) != string(k2.Raw.Serialize()) {
		t.Fatal("expected deterministic secp256k1 derivation from the same seed")
	}

	k3, err := w1.Derive(0, 1)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if string(k1.Raw.Serialize()) == string(k3.Raw.Serialize()) {
		t.Fatal("expected distinct keys for distinct indices")
	}
}

func TestDeriveKeystoreKeyVariesByAlgorithm(t *testing.T) {
	salt := []byte("test-salt")
	legacy, err := keys.DeriveKeystoreKey("hunter2", salt, keys.AlgorithmLegacy)
	if err != nil {
		t.Fatalf("DeriveKeystoreKey legacy: %v", err)
	}
	strong, err := keys.DeriveKeystoreKey("hunter2", salt, keys.AlgorithmStrong)
	if err != nil {
		t.Fatalf("DeriveKeystoreKey strong: %v", err)
	}
	if len(legacy) != 32 || len(strong) != 32 {
		t.Fatal("expected 32-byte derived keys")
	}
	if string(legacy) == string(strong) {
		t.Fatal("expected different algorithms to produce different key material")
	}
}
