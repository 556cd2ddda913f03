package flows

import (
	"context"
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/client"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// contractCreateBytecodeRef is the minimal ContractCreate payload this
// package needs: a reference to the file id holding the bytecode just
// assembled by the file-create/append steps.
type contractCreateBytecodeRef struct {
	BytecodeFileID ids.FileID
}

func (p contractCreateBytecodeRef) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	p.BytecodeFileID.WriteTo(inner, 1)
	w.WriteNested(field, inner)
}

func newContractCreateBody(fileID ids.FileID) *txbody.Body {
	body := txbody.NewBody()
	_ = body.SetPayload(contractCreateBytecodeRef{BytecodeFileID: fileID})
	return body
}

// ContractCreateFromBytecode implements the large-bytecode contract
// create sequence of spec.md §4.8: a file carrying the first ≤2KiB
// window of bytecode, the remainder appended via ChunkedAppend, then a
// contract-create referencing the assembled file. Each step observes
// receipt-success before the next runs.
func ContractCreateFromBytecode(ctx context.Context, c Submitter, fetcher client.ReceiptFetcher, payer ids.AccountID, bytecode []byte, signers ...txbody.Signer) (client.Receipt, error) {
	firstWindow := bytecode
	var remainder []byte
	if len(bytecode) > maxFirstWindowBytes {
		firstWindow = bytecode[:maxFirstWindowBytes]
		remainder = bytecode[maxFirstWindowBytes:]
	}

	createBody := newFileCreateBody(firstWindow)
	fileReceipt, err := submitAndWait(ctx, c, fetcher, createBody, signers, "create bytecode file")
	if err != nil {
		return client.Receipt{}, err
	}
	if fileReceipt.NewFileID == nil {
		return client.Receipt{}, fmt.Errorf("flows: contract create: file-create receipt carried no new file id")
	}
	fileID := *fileReceipt.NewFileID

	if len(remainder) > 0 {
		if _, err := ChunkedAppend(ctx, c, fetcher, payer, fileID, remainder, signers...); err != nil {
			return client.Receipt{}, fmt.Errorf("flows: contract create: appending bytecode remainder: %w", err)
		}
	}

	contractBody := newContractCreateBody(fileID)
	return submitAndWait(ctx, c, fetcher, contractBody, signers, "contract create")
}
