package flows

import (
	"context"
	"fmt"

	"github.com/hashnet-labs/hedera-core-sdk/client"
	"github.com/hashnet-labs/hedera-core-sdk/ids"
	"github.com/hashnet-labs/hedera-core-sdk/txbody"
	"github.com/hashnet-labs/hedera-core-sdk/wire"
)

// NftRejectEntry names one NFT serial being rejected; its owning token id
// contributes to the dissociate step's token set.
type NftRejectEntry struct {
	Token  ids.TokenID
	Serial int64
}

// tokenSetPayload is the minimal TokenReject/TokenDissociate payload this
// package needs: an ordered, de-duplicated set of token ids.
type tokenSetPayload struct {
	Owner  ids.AccountID
	Tokens []ids.TokenID
}

func (p tokenSetPayload) WriteTo(w *wire.Writer, field uint32) {
	inner := wire.NewWriter()
	p.Owner.WriteTo(inner, 1)
	for _, t := range p.Tokens {
		t.WriteTo(inner, 2)
	}
	w.WriteNested(field, inner)
}

// unionTokenIDs computes the union of fungible reject entries and NFT
// reject entries' owning tokens, in first-seen order, per spec.md §4.8.
func unionTokenIDs(fungible []ids.TokenID, nfts []NftRejectEntry) []ids.TokenID {
	seen := make(map[string]bool)
	var out []ids.TokenID
	add := func(t ids.TokenID) {
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, t)
	}
	for _, t := range fungible {
		add(t)
	}
	for _, n := range nfts {
		add(n.Token)
	}
	return out
}

// TokenRejectThenDissociate submits a token-reject, then a dissociate, each
// over the unique union of token ids referenced by the fungible and NFT
// entries, per spec.md §4.8. NFT serial numbers are not encoded in either
// body. Both steps inherit the caller's signer set.
func TokenRejectThenDissociate(ctx context.Context, c Submitter, fetcher client.ReceiptFetcher, owner ids.AccountID, fungible []ids.TokenID, nfts []NftRejectEntry, signers ...txbody.Signer) (client.Receipt, error) {
	tokens := unionTokenIDs(fungible, nfts)
	if len(tokens) == 0 {
		return client.Receipt{}, fmt.Errorf("flows: token reject requires at least one token or NFT entry")
	}

	rejectBody := txbody.NewBody()
	_ = rejectBody.SetPayload(tokenSetPayload{Owner: owner, Tokens: tokens})
	if _, err := submitAndWait(ctx, c, fetcher, rejectBody, signers, "token reject"); err != nil {
		return client.Receipt{}, err
	}

	dissociateBody := txbody.NewBody()
	_ = dissociateBody.SetPayload(tokenSetPayload{Owner: owner, Tokens: tokens})
	return submitAndWait(ctx, c, fetcher, dissociateBody, signers, "token dissociate")
}
