package keys

import (
	"github.com/hashnet-labs/hedera-core-sdk/sigmap"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// ContractKeyReference authorizes actions via the executing smart
// contract rather than a signature; off-chain signing treats these as
// always-unsatisfiable, per spec.md §4.3.
type ContractKeyReference struct {
	Shard, Realm, Num uint64
	Delegatable       bool
}

func (c ContractKeyReference) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, c.Shard)
	inner.WriteVarint(2, c.Realm)
	inner.WriteVarint(3, c.Num)

	outer := wire.NewWriter()
	tagField := uint32(keyFieldContractID)
	if c.Delegatable {
		tagField = keyFieldDelegatableContractID
	}
	outer.WriteNested(tagField, inner)
	w.WriteNested(field, outer)
}

// Satisfied always reports unsatisfied off-chain: only the ambient
// execution context of a running contract call can prove origination from
// this contract, which an SDK constructing and signing a transaction
// client-side can never witness.
func (c ContractKeyReference) Satisfied(bodyBytes []byte, sm *sigmap.Map, depth int) (bool, error) {
	if err := checkDepth(depth); err != nil {
		return false, err
	}
	return false, nil
}
