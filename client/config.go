package client

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/keys"
	"github.com/hashnet-labs/hedera-core-sdk/network"
)

// operator holds the client's fee-payer identity.
type operator struct {
	PayerID    ids.AccountID
	PrivateKey keys.Ed25519PrivateKey
}

// settings is the fully-resolved client construction surface, matching
// spec.md §6's recognized options.
type settings struct {
	nodes           map[string]string // account id text -> endpoint
	mirrorEndpoints []string
	op              *operator

	maxAttempts    int
	grpcDeadline   time.Duration
	minBackoff     time.Duration
	maxBackoff     time.Duration
	regenerateTxID bool
	maxTxFee       int64 // tinybar
	ledgerID       []byte

	policy   network.Policy
	dispatch Dispatcher
	clk      clock.Clock
}

func defaultSettings() settings {
	return settings{
		nodes:          map[string]string{},
		maxAttempts:    10,
		grpcDeadline:   10 * time.Second,
		minBackoff:     network.DefaultMinBackoff,
		maxBackoff:     network.DefaultMaxBackoff,
		regenerateTxID: true,
		policy:         network.RoundRobin,
		clk:            clock.New(),
	}
}

// Option configures a Client at construction. Unknown or conflicting
// options surface as a ConfigError from New, never a panic, per spec.md
// §9's open-question resolution on user-mistake signaling.
type Option func(*settings) error

// WithNodes registers the network as an explicit map of node account id
// text to gRPC endpoint.
func WithNodes(nodes map[string]string) Option {
	return func(s *settings) error {
		for k, v := range nodes {
			s.nodes[k] = v
		}
		return nil
	}
}

// WithMirrorEndpoints records mirror-node HTTP endpoints for callers that
// want to reach them directly; the SDK core does not implement a mirror
// client itself (see SPEC_FULL.md's carried-forward Non-goals).
func WithMirrorEndpoints(endpoints ...string) Option {
	return func(s *settings) error {
		s.mirrorEndpoints = append(s.mirrorEndpoints, endpoints...)
		return nil
	}
}

// WithOperator sets the fee-payer account and signing key used to
// auto-generate transaction ids and co-sign every request.
func WithOperator(payerID ids.AccountID, key keys.Ed25519PrivateKey) Option {
	return func(s *settings) error {
		s.op = &operator{PayerID: payerID, PrivateKey: key}
		return nil
	}
}

func WithMaxAttempts(n int) Option {
	return func(s *settings) error {
		if n <= 0 {
			return &ConfigError{Reason: "max_attempts must be positive"}
		}
		s.maxAttempts = n
		return nil
	}
}

func WithGRPCDeadline(d time.Duration) Option {
	return func(s *settings) error {
		if d <= 0 {
			return &ConfigError{Reason: "grpc_deadline must be positive"}
		}
		s.grpcDeadline = d
		return nil
	}
}

func WithBackoffRange(min, max time.Duration) Option {
	return func(s *settings) error {
		if min <= 0 || max < min {
			return &ConfigError{Reason: "min/max_backoff must satisfy 0 < min <= max"}
		}
		s.minBackoff, s.maxBackoff = min, max
		return nil
	}
}

func WithRegenerateTransactionID(enabled bool) Option {
	return func(s *settings) error {
		s.regenerateTxID = enabled
		return nil
	}
}

func WithMaxTransactionFee(tinybar int64) Option {
	return func(s *settings) error {
		if tinybar < 0 {
			return &ConfigError{Reason: "max_transaction_fee cannot be negative"}
		}
		s.maxTxFee = tinybar
		return nil
	}
}

func WithLedgerID(ledgerID []byte) Option {
	return func(s *settings) error {
		s.ledgerID = append([]byte(nil), ledgerID...)
		return nil
	}
}

// WithSelectionPolicy overrides the managed network's default
// round-robin node-selection policy.
func WithSelectionPolicy(p network.Policy) Option {
	return func(s *settings) error {
		s.policy = p
		return nil
	}
}

// WithDispatcher overrides how envelopes are sent to nodes; intended for
// stub-network tests exercising Testable Properties 9-12 and Scenarios
// S1/S3/S5 without a real gRPC endpoint.
func WithDispatcher(d Dispatcher) Option {
	return func(s *settings) error {
		s.dispatch = d
		return nil
	}
}

// WithClock overrides the client's wall clock (used for deadlines,
// backoff sleeps, and the managed network's cooldown bookkeeping), for
// deterministic tests of Testable Properties 9-12 and Scenarios S1/S3/S5.
func WithClock(clk clock.Clock) Option {
	return func(s *settings) error {
		s.clk = clk
		return nil
	}
}
