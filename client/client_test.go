package client_test

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/hashnet-labs/hedera-core-sdk/client"
	"github.com/hashnet-labs/hedera-core-sdk/hedera"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/keys"
	"github.com/hashnet-labs/hedera-core-sdk/network"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
)

func testSigner(t *testing.T) keys.Ed25519PrivateKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return keys.Ed25519PrivateKey{Raw: priv}
}

func balancedBody(t *testing.T, payer, other ids.AccountID) *txbody.Body {
	t.Helper()
	body := txbody.NewBody()
	transfers := txbody.NewHbarTransferList().
		AddTransfer(payer, hedera.NewHbar(-1)).
		AddTransfer(other, hedera.NewHbar(1))
	if err := body.SetHbarTransferList(transfers); err != nil {
		t.Fatalf("SetHbarTransferList: %v", err)
	}
	return body
}

// stubDispatcher replays one canned Response per call, in order, and
// records every node it was asked to contact.
type stubDispatcher struct {
	responses []*Response
	calls     []string
}

// Response aliases client.Response so the stub's literal construction
// below reads tersely.
type Response = client.Response

func (s *stubDispatcher) Dispatch(ctx context.Context, node *network.Node, envelope *txbody.SignedTransaction) (*client.Response, error) {
	s.calls = append(s.calls, node.AccountID.String())
	if len(s.calls) > len(s.responses) {
		return s.responses[len(s.responses)-1], nil
	}
	return s.responses[len(s.calls)-1], nil
}

func newTestClient(t *testing.T, clk clock.Clock, dispatch client.Dispatcher, nodeCount int) (*client.Client, ids.AccountID) {
	t.Helper()
	payer := ids.NewAccountID(0, 0, 1001)
	nodes := map[string]string{}
	for i := 0; i < nodeCount; i++ {
		nodes[ids.NewAccountID(0, 0, uint64(3+i)).String()] = "stub:0"
	}
	c, err := client.New(
		client.WithNodes(nodes),
		client.WithOperator(payer, keys.Ed25519PrivateKey{}),
		client.WithDispatcher(dispatch),
		client.WithClock(clk),
		client.WithMaxAttempts(5),
		client.WithGRPCDeadline(10*time.Second),
	)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return c, payer
}

// TestAttemptBoundExhaustsAfterMaxAttempts matches Testable Property 9: a
// node that always reports BUSY exhausts the configured attempt budget
// and reports MaxAttemptsExceeded rather than looping forever.
func TestAttemptBoundExhaustsAfterMaxAttempts(t *testing.T) {
	clk := clock.NewMock()
	stub := &stubDispatcher{responses: []*Response{{Status: client.StatusBusy}}}
	c, payer := newTestClient(t, clk, stub, 2)

	other := ids.NewAccountID(0, 0, 9999)
	body := balancedBody(t, payer, other)
	signer := testSigner(t)

	// BUSY classifies as RETRY_OTHER_NODE, which marks the node unhealthy
	// and moves on without sleeping, so the attempt budget exhausts
	// without needing to advance the mock clock.
	_, err := c.Execute(context.Background(), body, signer)
	if err == nil {
		t.Fatal("expected an error once attempts are exhausted")
	}
	if _, ok := err.(*client.MaxAttemptsExceeded); !ok {
		t.Fatalf("expected *client.MaxAttemptsExceeded, got %T: %v", err, err)
	}
	if len(stub.calls) != 5 {
		t.Fatalf("expected exactly max_attempts=5 dispatch calls, got %d", len(stub.calls))
	}
}

// TestNodeRotationOnBusy matches Testable Property 10 at the client
// level: a BUSY response marks the node unhealthy and the next attempt
// lands on a different node.
func TestNodeRotationOnBusy(t *testing.T) {
	clk := clock.NewMock()
	stub := &stubDispatcher{responses: []*Response{
		{Status: client.StatusBusy},
		{Status: client.StatusOK},
	}}
	c, payer := newTestClient(t, clk, stub, 2)

	other := ids.NewAccountID(0, 0, 9999)
	body := balancedBody(t, payer, other)
	signer := testSigner(t)

	resp, err := c.Execute(context.Background(), body, signer)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.Status != client.StatusOK {
		t.Fatalf("expected terminal OK, got %v", resp.Status)
	}
	if len(stub.calls) != 2 {
		t.Fatalf("expected 2 dispatch calls, got %d", len(stub.calls))
	}
	if stub.calls[0] == stub.calls[1] {
		t.Fatalf("expected the second attempt to land on a different node, both were %s", stub.calls[0])
	}
}

// TestTransactionIDRegeneratedOnExpiry matches Testable Property 11: a
// TRANSACTION_EXPIRED response with regenerate_tx_id enabled re-freezes
// the body with a new transaction id rather than terminating.
func TestTransactionIDRegeneratedOnExpiry(t *testing.T) {
	// Uses a real clock rather than a mock: the two transaction ids must
	// differ in their valid-start nanoseconds, which a frozen mock clock
	// would not produce across the two Freeze calls.
	clk := clock.New()
	stub := &stubDispatcher{responses: []*Response{
		{Status: client.StatusTransactionExpired},
		{Status: client.StatusOK},
	}}
	c, payer := newTestClient(t, clk, stub, 1)

	other := ids.NewAccountID(0, 0, 9999)
	body := balancedBody(t, payer, other)
	signer := testSigner(t)

	if err := body.Freeze(payer, []ids.AccountID{ids.NewAccountID(0, 0, 3)}, clk.Now); err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	firstID := body.TransactionID()
	resp, err := c.Execute(context.Background(), body, signer)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.Status != client.StatusOK {
		t.Fatalf("expected terminal OK after regeneration, got %v", resp.Status)
	}
	if body.TransactionID().Equal(firstID) {
		t.Fatal("expected the transaction id to change after a REGEN_TX_ID classification")
	}
}

// TestTransactionIDNotRegeneratedWhenDisabled covers the other branch of
// the same decision: with regenerate_tx_id disabled, TRANSACTION_EXPIRED
// is terminal.
func TestTransactionIDNotRegeneratedWhenDisabled(t *testing.T) {
	clk := clock.NewMock()
	stub := &stubDispatcher{responses: []*Response{{Status: client.StatusTransactionExpired}}}
	payer := ids.NewAccountID(0, 0, 1001)
	nodes := map[string]string{ids.NewAccountID(0, 0, 3).String(): "stub:0"}
	c, err := client.New(
		client.WithNodes(nodes),
		client.WithOperator(payer, keys.Ed25519PrivateKey{}),
		client.WithDispatcher(stub),
		client.WithClock(clk),
		client.WithRegenerateTransactionID(false),
	)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}

	other := ids.NewAccountID(0, 0, 9999)
	body := balancedBody(t, payer, other)
	signer := testSigner(t)

	_, err = c.Execute(context.Background(), body, signer)
	if err == nil {
		t.Fatal("expected a terminal error when regenerate_tx_id is disabled")
	}
	if _, ok := err.(*client.PrecheckError); !ok {
		t.Fatalf("expected *client.PrecheckError, got %T: %v", err, err)
	}
}

// TestDuplicateOnFirstAttemptIsTerminal and
// TestDuplicateOnLaterAttemptIsImplicitSuccess pin down the recorded
// open-question resolution for DUPLICATE_TRANSACTION.
func TestDuplicateOnFirstAttemptIsTerminal(t *testing.T) {
	clk := clock.NewMock()
	stub := &stubDispatcher{responses: []*Response{{Status: client.StatusDuplicateTxn}}}
	c, payer := newTestClient(t, clk, stub, 1)

	other := ids.NewAccountID(0, 0, 9999)
	body := balancedBody(t, payer, other)
	signer := testSigner(t)

	_, err := c.Execute(context.Background(), body, signer)
	if err == nil {
		t.Fatal("expected a terminal error for a first-attempt duplicate")
	}
}

func TestDuplicateOnLaterAttemptIsImplicitSuccess(t *testing.T) {
	clk := clock.NewMock()
	stub := &stubDispatcher{responses: []*Response{
		{Status: client.StatusBusy},
		{Status: client.StatusDuplicateTxn},
	}}
	c, payer := newTestClient(t, clk, stub, 2)

	other := ids.NewAccountID(0, 0, 9999)
	body := balancedBody(t, payer, other)
	signer := testSigner(t)

	resp, err := c.Execute(context.Background(), body, signer)
	if err != nil {
		t.Fatalf("expected a later-attempt duplicate to be treated as implicit success, got error: %v", err)
	}
	if resp.Status != client.StatusDuplicateTxn {
		t.Fatalf("expected the implicit-success response to carry through, got %v", resp.Status)
	}
}

func TestConfigRequiresAtLeastOneNode(t *testing.T) {
	_, err := client.New()
	if err == nil {
		t.Fatal("expected ConfigError when no nodes are configured")
	}
	if _, ok := err.(*client.ConfigError); !ok {
		t.Fatalf("expected *client.ConfigError, got %T", err)
	}
}
