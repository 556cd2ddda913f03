package keys

import (
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/sigmap"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// KeyList requires every child key to be satisfied.
type KeyList struct {
	Keys []Key
}

func NewKeyList(keys ...Key) KeyList { return KeyList{Keys: keys} }

func (l KeyList) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	for _, k := range l.Keys {
		k.WriteTo(inner, 1)
	}
	outer := wire.NewWriter()
	outer.WriteNested(1, inner)
	w.WriteNested(field, outer)
}

func (l KeyList) Satisfied(bodyBytes []byte, sm *sigmap.Map, depth int) (bool, error) {
	if err := checkDepth(depth); err != nil {
		return false, err
	}
	for _, k := range l.Keys {
		ok, err := k.Satisfied(bodyBytes, sm, depth-1)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ThresholdKey requires at least Threshold of its children to be satisfied.
type ThresholdKey struct {
	Threshold int
	Keys      []Key
}

func NewThresholdKey(threshold int, keys ...Key) (ThresholdKey, error) {
	if threshold < 1 || threshold > len(keys) {
		return ThresholdKey{}, fmt.Errorf("keys: threshold %d out of range [1,%d]", threshold, len(keys))
	}
	return ThresholdKey{Threshold: threshold, Keys: keys}, nil
}

func (t ThresholdKey) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	inner.WriteVarint(1, uint64(t.Threshold))
	keysWriter := wire.NewWriter()
	for _, k := range t.Keys {
		k.WriteTo(keysWriter, 1)
	}
	listWriter := wire.NewWriter()
	listWriter.WriteNested(1, keysWriter)
	inner.WriteNested(2, listWriter)
	w.WriteNested(field, inner)
}

func (t ThresholdKey) Satisfied(bodyBytes []byte, sm *sigmap.Map, depth int) (bool, error) {
	if err := checkDepth(depth); err != nil {
		return false, err
	}
	satisfied := 0
	for _, k := range t.Keys {
		ok, err := k.Satisfied(bodyBytes, sm, depth-1)
		if err != nil {
			return false, err
		}
		if ok {
			satisfied++
		}
	}
	return satisfied >= t.Threshold, nil
}
