package flows

import (
	"context"
	"fmt"
	"time"

	"github.com/hashnet-labs/hedera-core-sdk/client"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
)

// ChunkedAppend splits data into ≤4KiB windows and appends them to fileID
// in order, each chunk sharing one payer and valid-start transaction id
// distinguished only by a sequential nonce, per spec.md §4.8. A failed
// chunk aborts the flow; the final chunk's receipt is returned.
func ChunkedAppend(ctx context.Context, c Submitter, fetcher client.ReceiptFetcher, payer ids.AccountID, fileID ids.FileID, data []byte, signers ...txbody.Signer) (client.Receipt, error) {
	parts := chunks(data, maxChunkBytes)
	if len(parts) == 0 {
		return client.Receipt{}, fmt.Errorf("flows: chunked append requires a non-empty payload")
	}

	baseID := ids.NewTransactionID(payer, time.Now)

	var final client.Receipt
	for i, chunk := range parts {
		body := newFileAppendBody(fileID, chunk)
		if err := body.SetTransactionID(baseID.WithNonce(int32(i))); err != nil {
			return client.Receipt{}, fmt.Errorf("flows: chunked append: %w", err)
		}

		receipt, err := submitAndWait(ctx, c, fetcher, body, signers, fmt.Sprintf("append chunk %d/%d", i+1, len(parts)))
		if err != nil {
			return client.Receipt{}, err
		}
		final = receipt
	}
	return final, nil
}
