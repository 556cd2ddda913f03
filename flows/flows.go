// Package flows implements the SDK's multi-transaction sequences (C11):
// chunked file append, the large-bytecode contract-create sequence, and
// the token reject-then-dissociate pairing. Each flow treats any sub-step
// terminal error as flow-level terminal, per spec.md §4.9, and inherits
// the caller's signing and freezing choices rather than making its own.
package flows

import (
	"context"
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/client"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// maxChunkBytes is the largest payload a single file-append step may
// carry, per spec.md §4.8.
const maxChunkBytes = 4096

// maxFirstWindowBytes bounds a contract-create's embedded bytecode
// window before the remainder must be appended separately.
const maxFirstWindowBytes = 2048

// Submitter is the subset of *client.Client a flow depends on: submit one
// body and wait for its terminal receipt. Flows are written against this
// interface so they can be tested with a stub client.
type Submitter interface {
	Execute(ctx context.Context, body *txbody.Body, signers ...txbody.Signer) (*client.Response, error)
	PollReceipt(ctx context.Context, fetcher client.ReceiptFetcher, txID ids.TransactionID) (client.Receipt, error)
}

// submitAndWait runs one flow step to its terminal receipt, returning a
// flow-level terminal error on any sub-step failure (spec.md §4.9).
func submitAndWait(ctx context.Context, c Submitter, fetcher client.ReceiptFetcher, body *txbody.Body, signers []txbody.Signer, step string) (client.Receipt, error) {
	resp, err := c.Execute(ctx, body, signers...)
	if err != nil {
		return client.Receipt{}, fmt.Errorf("flows: step %q: %w", step, err)
	}
	if resp.Status != client.StatusOK && resp.Status != client.StatusConsensusSuccess {
		return client.Receipt{}, fmt.Errorf("flows: step %q: remote reported %s", step, resp.Status)
	}
	receipt, err := c.PollReceipt(ctx, fetcher, body.TransactionID())
	if err != nil {
		return client.Receipt{}, fmt.Errorf("flows: step %q: receipt: %w", step, err)
	}
	if receipt.Status != client.StatusConsensusSuccess {
		return client.Receipt{}, fmt.Errorf("flows: step %q: terminal status %s", step, receipt.Status)
	}
	return receipt, nil
}

// fileContentsPayload is the minimal FileCreate/FileAppend payload this
// package needs: a target file id (zero for create, which assigns one)
// plus a contents window. It implements txbody.Payload so it can ride
// inside a transaction body without txbody needing to know file-service
// semantics.
type fileContentsPayload struct {
	FileID   ids.FileID
	HasFile  bool
	Contents []byte
}

func (p fileContentsPayload) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	if p.HasFile {
		p.FileID.WriteTo(inner, 1)
	}
	inner.WriteBytes(2, p.Contents)
	w.WriteNested(field, inner)
}

func newFileCreateBody(window []byte) *txbody.Body {
	body := txbody.NewBody()
	_ = body.SetPayload(fileContentsPayload{Contents: window})
	return body
}

func newFileAppendBody(file ids.FileID, chunk []byte) *txbody.Body {
	body := txbody.NewBody()
	_ = body.SetPayload(fileContentsPayload{FileID: file, HasFile: true, Contents: chunk})
	return body
}

func chunks(data []byte, size int) [][]byte {
	if len(data) == 0 {
		return nil
	}
	var out [][]byte
	for offset := 0; offset < len(data); offset += size {
		end := offset + size
		if end > len(data) {
			end = len(data)
		}
		out = append(out, data[offset:end])
	}
	return out
}
