package client

import (
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
)

// errContext carries the four fields every user-visible error reports,
// per spec.md §7: kind, remote status (if any), last node attempted, and
// the transaction id if one was frozen.
type errContext struct {
	RemoteStatus  PrecheckStatus
	LastNode      ids.AccountID
	HasLastNode   bool
	TransactionID ids.TransactionID
	HasTxID       bool
}

func (c errContext) describe() string {
	s := ""
	if c.HasTxID {
		s += fmt.Sprintf(" tx=%s", c.TransactionID)
	}
	if c.HasLastNode {
		s += fmt.Sprintf(" node=%s", c.LastNode)
	}
	if c.RemoteStatus != "" {
		s += fmt.Sprintf(" status=%s", c.RemoteStatus)
	}
	return s
}

// ConfigError reports a malformed id, bad key encoding, a missing
// required builder field, or an unsupported client construction option.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "client: config error: " + e.Reason }

// FrozenMutation reports an attempted setter call after a body froze.
type FrozenMutation struct {
	errContext
}

func (e *FrozenMutation) Error() string {
	return "client: setter called after freeze" + e.describe()
}

// PrecheckError reports a remote rejection before consensus, carrying the
// specific status the node returned.
type PrecheckError struct {
	errContext
}

func (e *PrecheckError) Error() string {
	return "client: precheck rejected the transaction" + e.describe()
}

// ConsensusError reports that the transaction reached consensus but its
// status is non-success.
type ConsensusError struct {
	errContext
}

func (e *ConsensusError) Error() string {
	return "client: transaction reached consensus with a non-success status" + e.describe()
}

// TransportError reports a connection refused/reset, TLS failure, or
// framing error.
type TransportError struct {
	errContext
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: transport error: %v%s", e.Cause, e.describe())
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Timeout reports that the request's deadline was reached without a
// terminal outcome.
type Timeout struct {
	errContext
}

func (e *Timeout) Error() string { return "client: deadline exceeded" + e.describe() }

// MaxAttemptsExceeded reports that the attempt budget was exhausted
// before a terminal outcome.
type MaxAttemptsExceeded struct {
	errContext
	Attempts int
}

func (e *MaxAttemptsExceeded) Error() string {
	return fmt.Sprintf("client: exhausted %d attempts%s", e.Attempts, e.describe())
}

// DecodeError reports a malformed wire-codec or recursive-length-prefix
// payload.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return "client: decode error: " + e.Reason }

// CryptoError reports a signature verification failure, an unsupported
// curve, or a bad passphrase.
type CryptoError struct {
	Reason string
}

func (e *CryptoError) Error() string { return "client: crypto error: " + e.Reason }
