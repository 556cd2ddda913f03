package keys_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/hashnet-labs/hedera-core-sdk/keys"
	"github.com/hashnet-labs/hedera-core-sdk/sigmap"
)

func signedMap(t *testing.T, body []byte, signers ...keys.Ed25519PrivateKey) *sigmap.Map {
	t.Helper()
	sm := sigmap.New()
	for _, s := range signers {
		pub := s.PublicKey().Raw
		if err := sm.Add(pub, s.Sign(body)); err != nil {
			t.Fatalf("sigmap.Add: %v", err)
		}
	}
	return sm
}

func newEd25519(t *testing.T) (keys.Ed25519PublicKey, keys.Ed25519PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("ed25519.GenerateKey: %v", err)
	}
	pk, err := keys.NewEd25519PublicKey(pub)
	if err != nil {
		t.Fatalf("NewEd25519PublicKey: %v", err)
	}
	return pk, keys.Ed25519PrivateKey{Raw: priv}
}

func TestSingleKeySatisfiedBySignature(t *testing.T) {
	body := []byte("transaction body bytes")
	pub, priv := newEd25519(t)
	sm := signedMap(t, body, priv)

	ok, err := pub.Satisfied(body, sm, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if !ok {
		t.Fatal("expected key to be satisfied by its own signature")
	}
}

func TestSingleKeyUnsatisfiedWithoutSignature(t *testing.T) {
	body := []byte("transaction body bytes")
	pub, _ := newEd25519(t)
	sm := sigmap.New()

	ok, err := pub.Satisfied(body, sm, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if ok {
		t.Fatal("expected key to be unsatisfied with no entry in the signature map")
	}
}

func TestKeyListRequiresAllChildren(t *testing.T) {
	body := []byte("shared body bytes")
	pubA, privA := newEd25519(t)
	pubB, privB := newEd25519(t)

	list := keys.NewKeyList(pubA, pubB)

	full := signedMap(t, body, privA, privB)
	ok, err := list.Satisfied(body, full, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if !ok {
		t.Fatal("expected KeyList satisfied when all children signed")
	}

	partial := signedMap(t, body, privA)
	ok, err = list.Satisfied(body, partial, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if ok {
		t.Fatal("expected KeyList unsatisfied when one child did not sign")
	}
}

func TestThresholdKeyRequiresTOfN(t *testing.T) {
	body := []byte("threshold body bytes")
	pubA, privA := newEd25519(t)
	pubB, privB := newEd25519(t)
	pubC, _ := newEd25519(t)

	tk, err := keys.NewThresholdKey(2, pubA, pubB, pubC)
	if err != nil {
		t.Fatalf("NewThresholdKey: %v", err)
	}

	twoOfThree := signedMap(t, body, privA, privB)
	ok, err := tk.Satisfied(body, twoOfThree, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if !ok {
		t.Fatal("expected threshold key satisfied with 2 of 3 signers")
	}

	oneOfThree := signedMap(t, body, privA)
	ok, err = tk.Satisfied(body, oneOfThree, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if ok {
		t.Fatal("expected threshold key unsatisfied with only 1 of 3 signers")
	}
}

func TestThresholdKeyRejectsOutOfRange(t *testing.T) {
	pubA, _ := newEd25519(t)
	if _, err := keys.NewThresholdKey(0, pubA); err == nil {
		t.Fatal("expected error for threshold below 1")
	}
	if _, err := keys.NewThresholdKey(2, pubA); err == nil {
		t.Fatal("expected error for threshold exceeding key count")
	}
}

func TestContractKeyReferenceAlwaysUnsatisfied(t *testing.T) {
	ref := keys.ContractKeyReference{Shard: 0, Realm: 0, Num: 1234}
	sm := sigmap.New()
	ok, err := ref.Satisfied([]byte("anything"), sm, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if ok {
		t.Fatal("expected ContractKeyReference to never be satisfied off-chain")
	}
}

func TestDepthExceededRejectsDeepStructure(t *testing.T) {
	pub, _ := newEd25519(t)
	sm := sigmap.New()

	var cur keys.Key = pub
	for i := 0; i < keys.MaxDepth+2; i++ {
		cur = keys.NewKeyList(cur)
	}

	_, err := cur.Satisfied([]byte("body"), sm, keys.MaxDepth)
	if err != keys.ErrDepthExceeded {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}
}

func TestNestedKeyListAndThresholdCompose(t *testing.T) {
	body := []byte("nested body bytes")
	pubA, privA := newEd25519(t)
	pubB, privB := newEd25519(t)
	pubC, privC := newEd25519(t)

	inner, err := keys.NewThresholdKey(1, pubB, pubC)
	if err != nil {
		t.Fatalf("NewThresholdKey: %v", err)
	}
	outer := keys.NewKeyList(pubA, inner)

	sm := signedMap(t, body, privA, privC)
	ok, err := outer.Satisfied(body, sm, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if !ok {
		t.Fatal("expected outer list satisfied: A signed, and threshold(1) satisfied by C")
	}

	smMissingA := signedMap(t, body, privB)
	ok, err = outer.Satisfied(body, smMissingA, keys.MaxDepth)
	if err != nil {
		t.Fatalf("Satisfied: %v", err)
	}
	if ok {
		t.Fatal("expected outer list unsatisfied when top-level A did not sign")
	}
}
