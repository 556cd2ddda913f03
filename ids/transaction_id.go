package ids

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// clockSkewJitter is subtracted from "now" when generating a fresh
// transaction id's valid-start, to tolerate a small amount of clock skew
// between the SDK's clock and the node's, per spec.md §3.
const clockSkewJitter = 3 * time.Second

// TransactionID identifies a submitted (or to-be-submitted) operation.
// Two ids are equal iff every component matches; Nonce distinguishes
// child/chunk submissions that share one valid-start.
type TransactionID struct {
	AccountID  AccountID
	ValidStart Timestamp
	Scheduled  bool
	Nonce      *int32
}

// NewTransactionID generates (payer, now - jitter) using nowFn so callers
// can supply a deterministic clock in tests.
func NewTransactionID(payer AccountID, nowFn func() time.Time) TransactionID {
	start := TimestampFromTime(nowFn()).Add(-clockSkewJitter)
	return TransactionID{AccountID: payer, ValidStart: start}
}

// WithNonce returns a copy of id carrying nonce, used by chunked/child
// submissions that share id's valid-start.
func (id TransactionID) WithNonce(nonce int32) TransactionID {
	n := nonce
	id.Nonce = &n
	return id
}

func (id TransactionID) Equal(o TransactionID) bool {
	if !id.AccountID.Equal(o.AccountID) || !id.ValidStart.Equal(o.ValidStart) || id.Scheduled != o.Scheduled {
		return false
	}
	if (id.Nonce == nil) != (o.Nonce == nil) {
		return false
	}
	return id.Nonce == nil || *id.Nonce == *o.Nonce
}

// WriteTo encodes the full id (payer, valid-start, scheduled flag, and
// optional nonce) as a nested message under field.
func (id TransactionID) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	id.AccountID.WriteTo(inner, 1)
	id.ValidStart.WriteTo(inner, 2)
	inner.WriteBool(3, id.Scheduled)
	if id.Nonce != nil {
		inner.WriteSint(4, int64(*id.Nonce))
	}
	w.WriteNested(field, inner)
}

func (id TransactionID) String() string {
	var b strings.Builder
	b.WriteString(id.AccountID.String())
	b.WriteByte('@')
	b.WriteString(strconv.FormatInt(id.ValidStart.Seconds, 10))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(int(id.ValidStart.Nanos)))
	if id.Scheduled {
		b.WriteString("?scheduled")
	}
	if id.Nonce != nil {
		fmt.Fprintf(&b, "/%d", *id.Nonce)
	}
	return b.String()
}
