package client

// class is the execution engine's internal classification of a response,
// driving the attempt loop's retry decision per spec.md §4.6.
type class int

const (
	classOKTerminal class = iota
	classRetrySameNode
	classRetryOtherNode
	classRegenTxID
	classErrorTerminal
)

// classify maps a Response to a retry class. firstAttempt distinguishes
// DUPLICATE_TRANSACTION on the very first attempt (terminal) from a later
// attempt's duplicate (treated as implicit prior success), per spec.md
// §9's open-question resolution.
func classify(resp *Response, firstAttempt bool, regenerateTxID bool) class {
	if resp.TransportErr != nil {
		return classRetryOtherNode
	}
	switch resp.Status {
	case StatusOK, StatusConsensusSuccess:
		return classOKTerminal
	case StatusBusy, StatusPlatformNotActive:
		return classRetryOtherNode
	case StatusTransactionExpired:
		if regenerateTxID {
			return classRegenTxID
		}
		return classErrorTerminal
	case StatusDuplicateTxn:
		if firstAttempt {
			return classErrorTerminal
		}
		return classOKTerminal
	case StatusInvalidSignature, StatusInsufficientTxFee, StatusConsensusNonSuccess:
		return classErrorTerminal
	default:
		return classErrorTerminal
	}
}
