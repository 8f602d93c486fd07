package ledger

import (
	"context"
	"time"
)

// Repo persists change records per document so the suggestion history
// survives restarts. The in-session Ledger remains the source of truth
// while a session is live; the repo is written through best-effort.
type Repo interface {
	Append(ctx context.Context, documentID string, rec Record) error
	UpdateStatus(ctx context.Context, documentID, proposalID string, status Status, resolvedAt time.Time) error
	ListByDocument(ctx context.Context, documentID string) ([]Record, error)
}
