package client

import (
	"context"
	"time"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
)

// quickProbeCount and quickProbeInterval implement spec.md §4.7's poll
// cadence: an initial burst of quick probes followed by a slower cadence,
// bounded by the request's deadline.
const (
	quickProbeCount    = 5
	quickProbeInterval = 250 * time.Millisecond
	slowProbeInterval  = 2 * time.Second
)

// Receipt is the terminal outcome of a receipt poll: a status plus any
// newly created ids, as opposed to a Record's full artifact.
type Receipt struct {
	TransactionID    ids.TransactionID
	Status           PrecheckStatus
	NewAccountID     *ids.AccountID
	NewContractID    *ids.ContractID
	NewFileID        *ids.FileID
	NewTokenID       *ids.TokenID
	NewTopicID       *ids.TopicID
	NewScheduleID    *ids.ScheduleID
	HollowCreated    bool
}

// Record is a RECEIPT's richer sibling: the full execution artifact.
type Record struct {
	Receipt       Receipt
	TransferList  *HbarTransferSnapshot
	ContractCallResult []byte
	ScheduleRef   *ids.ScheduleID
	PaidStakingRewardsTinybar int64
	ChildRecords  []Record
}

// HbarTransferSnapshot is the flattened (account, tinybar) view a record
// reports, independent of the builder-side HbarTransferList type.
type HbarTransferSnapshot struct {
	Accounts []ids.AccountID
	Tinybars []int64
}

// ReceiptFetcher retrieves one receipt poll's raw outcome for a
// transaction id, returning (receipt, terminal). A non-terminal result
// means the network reported UNKNOWN or RECEIPT_NOT_FOUND and polling
// should continue.
type ReceiptFetcher interface {
	FetchReceipt(ctx context.Context, txID ids.TransactionID) (Receipt, bool, error)
}

// RecordFetcher retrieves the full record for a transaction id, used when
// a receipt reports a hollow-account creation.
type RecordFetcher interface {
	FetchRecord(ctx context.Context, txID ids.TransactionID) (Record, error)
}

// PollReceipt implements the receipt pump: quickProbeCount probes at
// quickProbeInterval, then slowProbeInterval thereafter, bounded by ctx's
// deadline or the client's configured grpc_deadline, whichever is
// sooner. It returns as soon as fetcher reports a terminal outcome.
func (c *Client) PollReceipt(ctx context.Context, fetcher ReceiptFetcher, txID ids.TransactionID) (Receipt, error) {
	deadline := c.settings.clk.Now().Add(c.settings.grpcDeadline)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for probe := 0; ; probe++ {
		receipt, terminal, err := fetcher.FetchReceipt(ctx, txID)
		if err != nil {
			return Receipt{}, &TransportError{
				errContext: errContext{TransactionID: txID, HasTxID: true},
				Cause:      err,
			}
		}
		if terminal {
			return receipt, nil
		}

		now := c.settings.clk.Now()
		if !now.Before(deadline) {
			return Receipt{}, &Timeout{errContext: errContext{TransactionID: txID, HasTxID: true}}
		}

		interval := slowProbeInterval
		if probe < quickProbeCount {
			interval = quickProbeInterval
		}
		sleepFor := interval
		if remaining := deadline.Sub(now); remaining < sleepFor {
			sleepFor = remaining
		}
		c.settings.clk.Sleep(sleepFor)
	}
}

// PollRecord polls for a receipt and, once terminal, fetches the full
// record. When the receipt reports a hollow-account creation, recorder is
// expected to include the associated child records (per spec.md §4.7).
func (c *Client) PollRecord(ctx context.Context, fetcher ReceiptFetcher, recorder RecordFetcher, txID ids.TransactionID) (Record, error) {
	receipt, err := c.PollReceipt(ctx, fetcher, txID)
	if err != nil {
		return Record{}, err
	}
	record, err := recorder.FetchRecord(ctx, txID)
	if err != nil {
		return Record{}, &TransportError{
			errContext: errContext{TransactionID: txID, HasTxID: true, RemoteStatus: receipt.Status},
			Cause:      err,
		}
	}
	return record, nil
}
