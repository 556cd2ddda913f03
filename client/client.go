// Package client implements the execution engine (C9), the receipt/record
// pump (C10), the client's construction surface, and the typed error
// taxonomy surfaced to callers.
package client

import (
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/network"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
)

// Client is the SDK's entry point: a shared, thread-safe handle over a
// managed network and an optional operator identity. A single Client may
// be used concurrently by many callers; per-request execution is
// sequential, per spec.md §5.
type Client struct {
	settings settings
	book     *network.AddressBook
}

// New constructs a Client from opts. Unknown or invalid combinations of
// options are reported as a *ConfigError rather than a panic.
func New(opts ...Option) (*Client, error) {
	s := defaultSettings()
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, err
		}
	}
	if len(s.nodes) == 0 {
		return nil, &ConfigError{Reason: "client requires at least one network node"}
	}

	nodes := make([]*network.Node, 0, len(s.nodes))
	for text, endpoint := range s.nodes {
		account, err := ids.ParseAccountID(text)
		if err != nil {
			return nil, &ConfigError{Reason: "invalid node account id " + text + ": " + err.Error()}
		}
		nodes = append(nodes, network.NewNode(account, endpoint, s.minBackoff))
	}

	book := network.NewAddressBook(nodes,
		network.WithPolicy(s.policy),
		network.WithBackoffRange(s.minBackoff, s.maxBackoff),
		network.WithClock(s.clk),
	)

	if s.dispatch == nil {
		s.dispatch = newGRPCDispatcher(nil)
	}

	return &Client{settings: s, book: book}, nil
}

// RefreshAddressBook reloads the managed network's node list from a YAML
// file, per spec.md §4.5.
func (c *Client) RefreshAddressBook(path string) error {
	return c.book.Refresh(path)
}

func (c *Client) operatorPayer() (ids.AccountID, bool) {
	if c.settings.op == nil {
		return ids.AccountID{}, false
	}
	return c.settings.op.PayerID, true
}

// OperatorSigner returns the configured operator's signing key as a
// txbody.Signer, for callers that want every request co-signed by the
// operator by default.
func (c *Client) OperatorSigner() (txbody.Signer, bool) {
	if c.settings.op == nil {
		return nil, false
	}
	return c.settings.op.PrivateKey, true
}
