package sessions

import "errors"

var (
	// ErrNotFound indicates the session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrMalformedProposal indicates a proposal missing required
	// fragments; it is dropped without creating a ledger record.
	ErrMalformedProposal = errors.New("malformed proposal")

	// ErrLedgerBusy indicates a bulk accept/reject is in flight;
	// individual decisions are disabled until it finishes.
	ErrLedgerBusy = errors.New("ledger busy")
)
