package txbody

import (
	"time"

	"github.com/hashnet-labs/hedera-core-sdk/hedera"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// Body wire field numbers. One and only one payload field is ever set.
const (
	fieldTransactionID    = 1
	fieldNodeAccountID    = 2
	fieldTransactionFee   = 3
	fieldValidDuration    = 4
	fieldMemo             = 5
	fieldHbarTransferList = 6
	fieldPayload          = 7
)

// Payload is a tagged, wire-encodable per-operation body. HbarTransferList
// is the one payload this package builds directly; everything else (file,
// contract, token, consensus, schedule operations) is an external domain
// builder's concern, per spec.md §4.4 — such builders implement Payload to
// plug into Freeze/Sign without this package knowing their shape.
type Payload interface {
	WriteTo(w *wire.Writer, field uint32)
}

// defaultValidDuration mirrors the network's standard transaction
// acceptance window.
var defaultValidDuration = ids.Duration{Seconds: 120}

// Body is the canonical transaction body builder: a state machine with
// two states, mutable and frozen. Setters are legal only in the mutable
// state; Freeze transitions once and is idempotent, per spec.md §9's
// builder-with-freeze pattern.
type Body struct {
	id            ids.TransactionID
	idSet         bool
	maxFee        hedera.Hbar
	validDuration ids.Duration
	memo          string
	transfers     *HbarTransferList
	payload       Payload

	frozen   bool
	variants map[string][]byte // node account id text -> body-bytes
}

// NewBody returns an empty, mutable body with the network's default
// valid-duration.
func NewBody() *Body {
	return &Body{validDuration: defaultValidDuration}
}

func (b *Body) IsFrozen() bool { return b.frozen }

// SetTransactionID pins an explicit id rather than letting Freeze
// auto-generate one from the operator payer.
func (b *Body) SetTransactionID(id ids.TransactionID) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	b.id = id
	b.idSet = true
	return nil
}

func (b *Body) SetMaxFee(fee hedera.Hbar) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	b.maxFee = fee
	return nil
}

func (b *Body) SetValidDuration(d ids.Duration) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	b.validDuration = d
	return nil
}

func (b *Body) SetMemo(memo string) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	b.memo = memo
	return nil
}

// SetHbarTransferList attaches a crypto-transfer payload.
func (b *Body) SetHbarTransferList(list *HbarTransferList) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	b.transfers = list
	return nil
}

// SetPayload attaches an arbitrary domain-builder payload (file, contract,
// token, consensus, or schedule operation), mutually exclusive with
// SetHbarTransferList.
func (b *Body) SetPayload(p Payload) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	b.payload = p
	return nil
}

func (b *Body) TransactionID() ids.TransactionID { return b.id }

// HasTransactionID reports whether an explicit id was pinned via
// SetTransactionID before Freeze, as opposed to one Freeze would have to
// auto-generate from a payer.
func (b *Body) HasTransactionID() bool { return b.idSet }

// Freeze captures transaction id (auto-generating from payer if unset),
// the current fee ceiling, and one body-bytes variant per candidate node,
// per spec.md §4.4. Calling Freeze twice is a no-op (Testable Property 8).
func (b *Body) Freeze(payer ids.AccountID, nodes []ids.AccountID, nowFn func() time.Time) error {
	if b.frozen {
		return nil
	}
	if b.transfers != nil && !b.transfers.netsToZero() {
		return ErrUnbalancedTransfer
	}
	if !b.idSet {
		b.id = ids.NewTransactionID(payer, nowFn)
		b.idSet = true
	}
	b.variants = make(map[string][]byte, len(nodes))
	for _, node := range nodes {
		b.variants[node.String()] = b.encode(node)
	}
	b.frozen = true
	return nil
}

// reencode rebuilds every node variant's cached body-bytes against the
// current transaction id.
func (b *Body) reencode(nodes []ids.AccountID) error {
	if len(nodes) == 0 {
		return nil
	}
	b.variants = make(map[string][]byte, len(nodes))
	for _, node := range nodes {
		b.variants[node.String()] = b.encode(node)
	}
	return nil
}

// ReFreeze regenerates the transaction id and recomputes every node
// variant's body-bytes, used after a REGEN_TX_ID classification.
func (b *Body) ReFreeze(nodes []ids.AccountID, nowFn func() time.Time) error {
	if !b.frozen {
		return ErrNotFrozen
	}
	payer := b.id.AccountID
	b.id = ids.NewTransactionID(payer, nowFn)
	return b.reencode(nodes)
}

// BodyBytesFor returns the cached body-bytes variant targeting node,
// computed at Freeze time.
func (b *Body) BodyBytesFor(node ids.AccountID) ([]byte, bool) {
	if !b.frozen {
		return nil, false
	}
	bytes, ok := b.variants[node.String()]
	return bytes, ok
}

func (b *Body) encode(node ids.AccountID) []byte {
	w := wire.NewWriter()
	b.id.WriteTo(w, fieldTransactionID)
	node.WriteTo(w, fieldNodeAccountID)
	w.WriteVarint(fieldTransactionFee, uint64(b.maxFee.AsTinybar()))
	b.validDuration.WriteTo(w, fieldValidDuration)
	w.WriteString(fieldMemo, b.memo)
	if b.transfers != nil {
		b.transfers.writeTo(w, fieldHbarTransferList)
	}
	if b.payload != nil {
		b.payload.WriteTo(w, fieldPayload)
	}
	return w.Bytes()
}
