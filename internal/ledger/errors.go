package ledger

import "errors"

var (
	// ErrNotFound indicates no record exists for the proposal id.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyResolved indicates the record already reached a terminal
	// status; callers log and treat the call as a no-op.
	ErrAlreadyResolved = errors.New("record already resolved")

	// ErrInvalidStatus indicates an attempt to resolve to a non-terminal
	// status.
	ErrInvalidStatus = errors.New("invalid resolution status")
)
