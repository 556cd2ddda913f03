package ethtx

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestFeeMarketScenarioS4(t *testing.T) {
	to := [20]byte{0x01, 0x02}
	tx := Transaction{
		Type:                 FeeMarket,
		ChainID:              uint256.NewInt(1),
		Nonce:                0,
		MaxPriorityFeePerGas: nil,
		MaxFeePerGas:         nil,
		GasLimit:             21000,
		To:                   &to,
		Value:                nil,
		Data:                 nil,
		AccessList:           nil,
		Sig: Signature{
			V: uint256.NewInt(0),
			R: mustUint256(32),
			S: mustUint256(32),
		},
	}
	enc, err := tx.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if enc[0] != byte(FeeMarket) {
		t.Fatalf("expected leading type byte 0x02, got %#x", enc[0])
	}

	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != FeeMarket || got.GasLimit != 21000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.MaxPriorityFeePerGas.Sign() != 0 || got.MaxFeePerGas.Sign() != 0 {
		t.Fatalf("empty fee fields should decode to zero")
	}
}

func mustUint256(n int) *uint256.Int {
	b := make([]byte, n)
	b[n-1] = 1
	v := new(uint256.Int)
	v.SetBytes(b)
	return v
}

func TestLegacyRoundTrip(t *testing.T) {
	to := [20]byte{0xaa}
	tx := Transaction{
		Type:     Legacy,
		Nonce:    5,
		GasPrice: uint256.NewInt(1_000_000_000),
		GasLimit: 21000,
		To:       &to,
		Value:    uint256.NewInt(1),
		Data:     []byte{0xde, 0xad},
		Sig: Signature{
			V: uint256.NewInt(27),
			R: mustUint256(32),
			S: mustUint256(32),
		},
	}
	enc, err := tx.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if enc[0] < 0xc0 {
		t.Fatalf("legacy envelope must start directly with an RLP list header")
	}
	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Nonce != 5 || got.GasLimit != 21000 || *got.To != to {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestAccessListRoundTrip(t *testing.T) {
	to := [20]byte{0xbb}
	tx := Transaction{
		Type:     AccessList,
		ChainID:  uint256.NewInt(1),
		Nonce:    1,
		GasPrice: uint256.NewInt(2),
		GasLimit: 50000,
		To:       &to,
		Value:    uint256.NewInt(0),
		Data:     nil,
		AccessList: []AccessTuple{
			{Address: [20]byte{0xcc}, StorageKeys: [][32]byte{{0x01}}},
		},
		Sig: Signature{V: uint256.NewInt(1), R: mustUint256(32), S: mustUint256(32)},
	}
	enc, err := tx.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if enc[0] != byte(AccessList) {
		t.Fatalf("expected leading type byte 0x01, got %#x", enc[0])
	}
	got, err := Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.AccessList) != 1 || got.AccessList[0].Address != [20]byte{0xcc} {
		t.Fatalf("access list mismatch: %+v", got.AccessList)
	}
}
