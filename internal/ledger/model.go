// Package ledger holds the append-only log of proposed document changes
// and their resolution lifecycle.
package ledger

import "time"

// Status is the lifecycle state of a change record.
type Status string

const (
	// StatusPending means the proposal awaits a decision.
	StatusPending Status = "pending"
	// StatusAccepted means the change was applied to the document.
	StatusAccepted Status = "accepted"
	// StatusRejected means the change was reverted from the document.
	StatusRejected Status = "rejected"
	// StatusNotFound means the proposal's fragment could no longer be
	// located at decision time; the document was left untouched.
	StatusNotFound Status = "not_found"
	// StatusStopped means the generator stream was cancelled before the
	// proposal was decided.
	StatusStopped Status = "stopped"
)

// Terminal reports whether the status is final. Terminal records are
// frozen and never revert to pending.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusNotFound, StatusStopped:
		return true
	}
	return false
}

// Proposal is a suggested fragment replacement produced by the content
// generator. Proposals are immutable once created. The generator may
// retry or duplicate deliveries, so the id doubles as an idempotency key.
type Proposal struct {
	ID              string
	OldFragment     string
	NewFragment     string
	TargetElementID string
}

// Record tracks the resolution of one proposal. DiffFragment is the
// rendered review markup shown to the user before a decision is made.
type Record struct {
	ProposalID   string
	Proposal     Proposal
	Status       Status
	DiffFragment string
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}
