package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	Get(ctx context.Context, documentID string) (Document, error)
	UpdateHTML(ctx context.Context, documentID, html string, updatedAt time.Time) error
	AppendRevision(ctx context.Context, rev Revision) error
	ListRevisions(ctx context.Context, documentID string, limit int) ([]Revision, error)
}
