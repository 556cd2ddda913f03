// Package keys implements the recursive key variant (single-curve keys,
// key lists, threshold keys, contract references), deterministic signing,
// HD derivation, and mnemonic/passphrase handling.
package keys

import (
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/sigmap"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// MaxDepth bounds recursive key structures to prevent cycles and stack
// exhaustion, per spec.md §3.
const MaxDepth = 10

// Key is the recursive sum type: a single-curve public key, a KeyList, a
// ThresholdKey, or a contract/delegatable-contract reference.
type Key interface {
	// WriteTo encodes the key's tagged-union wire form under field.
	WriteTo(w *wire.Writer, field uint32)
	// Satisfied reports whether sigMap (signatures over bodyBytes)
	// satisfies this key, recursing through lists/thresholds. depth
	// counts remaining recursion budget; callers pass MaxDepth at the
	// top level.
	Satisfied(bodyBytes []byte, sigMap *sigmap.Map, depth int) (bool, error)
}

// ErrDepthExceeded is returned when a key structure recurses past MaxDepth.
var ErrDepthExceeded = fmt.Errorf("keys: structure exceeds max depth %d", MaxDepth)

func checkDepth(depth int) error {
	if depth <= 0 {
		return ErrDepthExceeded
	}
	return nil
}
