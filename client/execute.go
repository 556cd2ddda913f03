package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/network"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
)

// Execute runs the attempt loop of spec.md §4.6 against body, freezing it
// against the current address book if it is not already frozen, signing
// each node variant with signers, and retrying per the classification
// table until a terminal outcome, the deadline, or the attempt budget is
// reached.
func (c *Client) Execute(ctx context.Context, body *txbody.Body, signers ...txbody.Signer) (*Response, error) {
	nodes := c.book.Nodes()
	if len(nodes) == 0 {
		return nil, &ConfigError{Reason: "no candidate nodes in the managed network"}
	}
	nodeAccounts := make([]ids.AccountID, len(nodes))
	for i, n := range nodes {
		nodeAccounts[i] = n.AccountID
	}

	deadline := c.settings.clk.Now().Add(c.settings.grpcDeadline)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if !body.IsFrozen() {
		payer := body.TransactionID().AccountID
		if !body.HasTransactionID() {
			operatorID, hasOp := c.operatorPayer()
			if !hasOp {
				return nil, &ConfigError{Reason: "body has no transaction id and client has no operator to auto-generate one"}
			}
			payer = operatorID
		}
		if err := body.Freeze(payer, nodeAccounts, c.settings.clk.Now); err != nil {
			return nil, err
		}
	}

	envelope, err := txbody.Sign(body, nodeAccounts, signers...)
	if err != nil {
		return nil, err
	}

	correlationID := uuid.New().String()

	attempt := 0
	firstAttempt := true
	var lastNode *network.Node

	for attempt < c.settings.maxAttempts && c.settings.clk.Now().Before(deadline) {
		node, err := c.book.Pick()
		if err != nil {
			return nil, err
		}
		lastNode = node

		signed, ok := envelope.For(node.AccountID)
		if !ok {
			return nil, fmt.Errorf("client: no signed variant for node %s", node.AccountID)
		}

		logrus.WithFields(logrus.Fields{
			"correlation_id": correlationID,
			"node":           node.AccountID.String(),
			"attempt":        attempt,
		}).Debug("client: dispatching transaction attempt")

		remaining := deadline.Sub(c.settings.clk.Now())
		attemptCtx, cancel := context.WithTimeout(ctx, remaining)
		resp, dispatchErr := c.settings.dispatch.Dispatch(attemptCtx, node, signed)
		cancel()
		if dispatchErr != nil {
			return nil, dispatchErr
		}

		cls := classify(resp, firstAttempt, c.settings.regenerateTxID)
		firstAttempt = false

		switch cls {
		case classOKTerminal:
			c.book.MarkSuccess(node)
			return resp, nil

		case classRetrySameNode:
			c.book.MarkSuccess(node)
			c.settings.clk.Sleep(node.BackoffUntil().Sub(c.settings.clk.Now()))
			attempt++

		case classRetryOtherNode:
			c.book.MarkUnhealthy(node)
			attempt++

		case classRegenTxID:
			if !c.settings.regenerateTxID {
				return nil, c.errorFor(resp, lastNode, body)
			}
			if err := body.ReFreeze(nodeAccounts, c.settings.clk.Now); err != nil {
				return nil, err
			}
			envelope, err = txbody.Sign(body, nodeAccounts, signers...)
			if err != nil {
				return nil, err
			}
			continue

		case classErrorTerminal:
			return nil, c.errorFor(resp, lastNode, body)
		}
	}

	if c.settings.clk.Now().After(deadline) || c.settings.clk.Now().Equal(deadline) {
		return nil, &Timeout{errContext: c.describeOutcome(lastNode, body)}
	}
	return nil, &MaxAttemptsExceeded{errContext: c.describeOutcome(lastNode, body), Attempts: attempt}
}

func (c *Client) describeOutcome(lastNode *network.Node, body *txbody.Body) errContext {
	ec := errContext{}
	if lastNode != nil {
		ec.LastNode = lastNode.AccountID
		ec.HasLastNode = true
	}
	if body.IsFrozen() {
		ec.TransactionID = body.TransactionID()
		ec.HasTxID = true
	}
	return ec
}

func (c *Client) errorFor(resp *Response, lastNode *network.Node, body *txbody.Body) error {
	ec := c.describeOutcome(lastNode, body)
	ec.RemoteStatus = resp.Status
	if resp.Status == StatusConsensusNonSuccess {
		return &ConsensusError{errContext: ec}
	}
	return &PrecheckError{errContext: ec}
}
