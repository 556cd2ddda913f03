package txbody

import (
	"github.com/hashnet-labs/hedera-core-sdk/hedera"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// hbarAdjust is one account's net change within a transfer list.
type hbarAdjust struct {
	AccountID ids.AccountID
	Amount    hedera.Hbar
}

// HbarTransferList is the payload for a crypto-transfer operation: a set
// of per-account adjustments that must net to zero, per Testable
// Property 13.
type HbarTransferList struct {
	adjustments []hbarAdjust
}

// NewHbarTransferList builds an empty transfer list; use AddTransfer to
// populate it before attaching it to a Body.
func NewHbarTransferList() *HbarTransferList {
	return &HbarTransferList{}
}

// AddTransfer appends an adjustment for account. Positive amounts credit
// the account; negative amounts debit it.
func (l *HbarTransferList) AddTransfer(account ids.AccountID, amount hedera.Hbar) *HbarTransferList {
	l.adjustments = append(l.adjustments, hbarAdjust{AccountID: account, Amount: amount})
	return l
}

// netsToZero reports whether the sum of all adjustments' tinybar amounts
// is exactly zero.
func (l *HbarTransferList) netsToZero() bool {
	var sum int64
	for _, a := range l.adjustments {
		sum += a.Amount.AsTinybar()
	}
	return sum == 0
}

func (l *HbarTransferList) writeTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	for _, a := range l.adjustments {
		entry := wire.NewWriter()
		a.AccountID.WriteTo(entry, 1)
		entry.WriteSint(2, a.Amount.AsTinybar())
		inner.WriteNested(1, entry)
	}
	w.WriteNested(field, inner)
}
