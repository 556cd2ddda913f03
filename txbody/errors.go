// Package txbody implements the canonical transaction/query body, its
// freeze-once state machine, and the signed envelope assembled from a
// frozen body plus a signature map.
package txbody

import "errors"

// ErrAlreadyFrozen is returned by any mutator called after Freeze.
var ErrAlreadyFrozen = errors.New("txbody: body is already frozen")

// ErrNotFrozen is returned by operations (body-bytes, signing) that
// require a frozen body.
var ErrNotFrozen = errors.New("txbody: body is not frozen")

// ErrUnbalancedTransfer is returned at freeze time when an HbarTransferList
// does not net to zero across all accounts.
var ErrUnbalancedTransfer = errors.New("txbody: transfer list does not net to zero")
