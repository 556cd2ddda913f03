package client

// PrecheckStatus is the remote node's per-submission validation outcome,
// reported before the transaction is proposed to consensus.
type PrecheckStatus string

const (
	StatusOK                  PrecheckStatus = "OK"
	StatusBusy                PrecheckStatus = "BUSY"
	StatusPlatformNotActive   PrecheckStatus = "PLATFORM_NOT_ACTIVE"
	StatusTransactionExpired  PrecheckStatus = "TRANSACTION_EXPIRED"
	StatusDuplicateTxn        PrecheckStatus = "DUPLICATE_TRANSACTION"
	StatusInvalidSignature    PrecheckStatus = "INVALID_SIGNATURE"
	StatusInsufficientTxFee   PrecheckStatus = "INSUFFICIENT_TX_FEE"
	StatusReceiptNotFound     PrecheckStatus = "RECEIPT_NOT_FOUND"
	StatusUnknown             PrecheckStatus = "UNKNOWN"
	StatusConsensusSuccess    PrecheckStatus = "SUCCESS"
	StatusConsensusNonSuccess PrecheckStatus = "CONSENSUS_ERROR"
)

// Response is the SDK-internal decoding of whatever bytes a node's Send
// returned; a Dispatcher is responsible for turning wire bytes into one
// of these, so the execution engine never depends on a specific payload
// decoder.
type Response struct {
	Status PrecheckStatus

	// TransportErr is set instead of Status when the node could not be
	// reached at all (connection refused/reset, TLS failure).
	TransportErr error

	// CostTinybar carries a COST_ANSWER query's parsed cost.
	CostTinybar *int64

	// HollowAccountCreated is set when the submission created a hollow account,
	// signaling the receipt pump to also fetch child records.
	HollowAccountCreated bool
}
