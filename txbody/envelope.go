package txbody

import (
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/sigmap"
)

// Signer is anything that can produce a raw signature over body-bytes and
// report the public key it signs with; keys.Ed25519PrivateKey and
// keys.ECDSASecp256k1PrivateKey both satisfy it.
type Signer interface {
	PublicKeyBytes() []byte
	Sign(bodyBytes []byte) []byte
}

// SignedTransaction pairs one node's body-bytes with the signature map
// collected over it, matching the wire envelope in spec.md §6.
type SignedTransaction struct {
	BodyBytes []byte
	SigMap    *sigmap.Map
}

// Envelope holds one SignedTransaction per candidate node, all signed by
// the same signer set (each signer signs each variant), per spec.md §4.4.
type Envelope struct {
	body     *Body
	variants map[string]*SignedTransaction
}

// Sign builds one SignedTransaction per node the body was frozen against,
// having every signer sign each node's distinct body-bytes.
func Sign(body *Body, nodes []ids.AccountID, signers ...Signer) (*Envelope, error) {
	if !body.IsFrozen() {
		return nil, ErrNotFrozen
	}
	env := &Envelope{body: body, variants: make(map[string]*SignedTransaction, len(nodes))}
	for _, node := range nodes {
		bodyBytes, ok := body.BodyBytesFor(node)
		if !ok {
			return nil, fmt.Errorf("txbody: no frozen body-bytes for node %s", node)
		}
		sm := sigmap.New()
		for _, s := range signers {
			if err := sm.Add(s.PublicKeyBytes(), s.Sign(bodyBytes)); err != nil {
				return nil, fmt.Errorf("txbody: signing node %s: %w", node, err)
			}
		}
		env.variants[node.String()] = &SignedTransaction{BodyBytes: bodyBytes, SigMap: sm}
	}
	return env, nil
}

// For returns the SignedTransaction matching node, the variant the
// execution engine sends when it selects that node.
func (e *Envelope) For(node ids.AccountID) (*SignedTransaction, bool) {
	v, ok := e.variants[node.String()]
	return v, ok
}
