// Package ethtx encodes and decodes the external-chain transaction
// envelopes referenced by a scheduled ethereum-transaction payload: legacy,
// EIP-2930-shaped access-list, and EIP-1559-shaped fee-market variants,
// distinguished by a leading type byte. Fields recursively
// length-prefix-encode over the rlp package.
package ethtx

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hashnet-labs/hedera-core-sdk/rlp"
)

type Type byte

const (
	Legacy     Type = 0x00
	AccessList Type = 0x01
	FeeMarket  Type = 0x02
)

// AccessTuple is one (address, storage keys) entry of an access list.
type AccessTuple struct {
	Address     [20]byte
	StorageKeys [][32]byte
}

// Signature holds the ECDSA recovery id/components shared by all variants.
type Signature struct {
	V *uint256.Int
	R *uint256.Int
	S *uint256.Int
}

// Transaction is the union of the three external-chain envelope shapes.
// Only the fields relevant to Type are encoded or populated by decoding;
// fields belonging to a different Type are ignored.
type Transaction struct {
	Type Type

	ChainID  *uint256.Int // absent (nil) for Legacy
	Nonce    uint64
	GasPrice *uint256.Int // Legacy, AccessList only
	GasLimit uint64

	MaxPriorityFeePerGas *uint256.Int // FeeMarket only
	MaxFeePerGas         *uint256.Int // FeeMarket only

	To         *[20]byte // nil marks contract creation
	Value      *uint256.Int
	Data       []byte
	AccessList []AccessTuple // AccessList, FeeMarket only

	Sig Signature
}

func u256Item(v *uint256.Int) rlp.Item {
	if v == nil {
		return rlp.String(nil)
	}
	return rlp.BigInt(v.ToBig())
}

func addrItem(a *[20]byte) rlp.Item {
	if a == nil {
		return rlp.String(nil)
	}
	return rlp.String(a[:])
}

func accessListItem(list []AccessTuple) rlp.Item {
	items := make([]rlp.Item, len(list))
	for i, t := range list {
		keys := make([]rlp.Item, len(t.StorageKeys))
		for j, k := range t.StorageKeys {
			keys[j] = rlp.String(k[:])
		}
		items[i] = rlp.List(rlp.String(t.Address[:]), rlp.List(keys...))
	}
	return rlp.List(items...)
}

// Encode serializes tx per spec.md §6's field ordering for its Type.
func (tx Transaction) Encode() ([]byte, error) {
	switch tx.Type {
	case Legacy:
		item := rlp.List(
			rlp.Uint64(tx.Nonce),
			u256Item(tx.GasPrice),
			rlp.Uint64(tx.GasLimit),
			addrItem(tx.To),
			u256Item(tx.Value),
			rlp.String(tx.Data),
			u256Item(tx.Sig.V),
			u256Item(tx.Sig.R),
			u256Item(tx.Sig.S),
		)
		return rlp.Encode(item), nil

	case AccessList:
		item := rlp.List(
			u256Item(tx.ChainID),
			rlp.Uint64(tx.Nonce),
			u256Item(tx.GasPrice),
			rlp.Uint64(tx.GasLimit),
			addrItem(tx.To),
			u256Item(tx.Value),
			rlp.String(tx.Data),
			accessListItem(tx.AccessList),
			u256Item(tx.Sig.V),
			u256Item(tx.Sig.R),
			u256Item(tx.Sig.S),
		)
		return append([]byte{byte(AccessList)}, rlp.Encode(item)...), nil

	case FeeMarket:
		item := rlp.List(
			u256Item(tx.ChainID),
			rlp.Uint64(tx.Nonce),
			u256Item(tx.MaxPriorityFeePerGas),
			u256Item(tx.MaxFeePerGas),
			rlp.Uint64(tx.GasLimit),
			addrItem(tx.To),
			u256Item(tx.Value),
			rlp.String(tx.Data),
			accessListItem(tx.AccessList),
			u256Item(tx.Sig.V),
			u256Item(tx.Sig.R),
			u256Item(tx.Sig.S),
		)
		return append([]byte{byte(FeeMarket)}, rlp.Encode(item)...), nil

	default:
		return nil, fmt.Errorf("ethtx: unknown type byte %#x", tx.Type)
	}
}

// Decode parses buf, inspecting the leading type byte (absent for Legacy,
// which begins directly with an RLP list header >= 0xc0).
func Decode(buf []byte) (Transaction, error) {
	if len(buf) == 0 {
		return Transaction{}, fmt.Errorf("ethtx: empty input")
	}
	if buf[0] >= 0xc0 {
		return decodeLegacy(buf)
	}
	switch Type(buf[0]) {
	case AccessList:
		return decodeAccessList(buf[1:])
	case FeeMarket:
		return decodeFeeMarket(buf[1:])
	default:
		return Transaction{}, fmt.Errorf("ethtx: unrecognized type byte %#x", buf[0])
	}
}

func bigFromBytes(b []byte) *uint256.Int {
	v := new(uint256.Int)
	v.SetBytes(b)
	return v
}

func addrFromBytes(b []byte) *[20]byte {
	if len(b) == 0 {
		return nil
	}
	var a [20]byte
	copy(a[:], b)
	return &a
}

func decodeLegacy(buf []byte) (Transaction, error) {
	item, err := rlp.Decode(buf)
	if err != nil {
		return Transaction{}, err
	}
	if !item.IsList() || len(item.Children) != 9 {
		return Transaction{}, fmt.Errorf("ethtx: legacy envelope expects 9 fields")
	}
	f := item.Children
	return Transaction{
		Type:     Legacy,
		Nonce:    bigFromBytes(f[0].Bytes).Uint64(),
		GasPrice: bigFromBytes(f[1].Bytes),
		GasLimit: bigFromBytes(f[2].Bytes).Uint64(),
		To:       addrFromBytes(f[3].Bytes),
		Value:    bigFromBytes(f[4].Bytes),
		Data:     f[5].Bytes,
		Sig: Signature{
			V: bigFromBytes(f[6].Bytes),
			R: bigFromBytes(f[7].Bytes),
			S: bigFromBytes(f[8].Bytes),
		},
	}, nil
}

func decodeAccessList(buf []byte) (Transaction, error) {
	item, err := rlp.Decode(buf)
	if err != nil {
		return Transaction{}, err
	}
	if !item.IsList() || len(item.Children) != 11 {
		return Transaction{}, fmt.Errorf("ethtx: access-list envelope expects 11 fields")
	}
	f := item.Children
	al, err := decodeAccessListItem(f[7])
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Type:       AccessList,
		ChainID:    bigFromBytes(f[0].Bytes),
		Nonce:      bigFromBytes(f[1].Bytes).Uint64(),
		GasPrice:   bigFromBytes(f[2].Bytes),
		GasLimit:   bigFromBytes(f[3].Bytes).Uint64(),
		To:         addrFromBytes(f[4].Bytes),
		Value:      bigFromBytes(f[5].Bytes),
		Data:       f[6].Bytes,
		AccessList: al,
		Sig: Signature{
			V: bigFromBytes(f[8].Bytes),
			R: bigFromBytes(f[9].Bytes),
			S: bigFromBytes(f[10].Bytes),
		},
	}, nil
}

func decodeFeeMarket(buf []byte) (Transaction, error) {
	item, err := rlp.Decode(buf)
	if err != nil {
		return Transaction{}, err
	}
	if !item.IsList() || len(item.Children) != 12 {
		return Transaction{}, fmt.Errorf("ethtx: fee-market envelope expects 12 fields")
	}
	f := item.Children
	al, err := decodeAccessListItem(f[8])
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		Type:                 FeeMarket,
		ChainID:              bigFromBytes(f[0].Bytes),
		Nonce:                bigFromBytes(f[1].Bytes).Uint64(),
		MaxPriorityFeePerGas: bigFromBytes(f[2].Bytes),
		MaxFeePerGas:         bigFromBytes(f[3].Bytes),
		GasLimit:             bigFromBytes(f[4].Bytes).Uint64(),
		To:                   addrFromBytes(f[5].Bytes),
		Value:                bigFromBytes(f[6].Bytes),
		Data:                 f[7].Bytes,
		AccessList:           al,
		Sig: Signature{
			V: bigFromBytes(f[9].Bytes),
			R: bigFromBytes(f[10].Bytes),
			S: bigFromBytes(f[11].Bytes),
		},
	}, nil
}

func decodeAccessListItem(item rlp.Item) ([]AccessTuple, error) {
	if !item.IsList() {
		return nil, fmt.Errorf("ethtx: access list must be a list")
	}
	out := make([]AccessTuple, len(item.Children))
	for i, c := range item.Children {
		if !c.IsList() || len(c.Children) != 2 {
			return nil, fmt.Errorf("ethtx: access-tuple must have 2 fields")
		}
		var addr [20]byte
		copy(addr[:], c.Children[0].Bytes)
		keysItem := c.Children[1]
		if !keysItem.IsList() {
			return nil, fmt.Errorf("ethtx: storage keys must be a list")
		}
		keys := make([][32]byte, len(keysItem.Children))
		for j, k := range keysItem.Children {
			copy(keys[j][:], k.Bytes)
		}
		out[i] = AccessTuple{Address: addr, StorageKeys: keys}
	}
	return out, nil
}
