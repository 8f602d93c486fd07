package documents

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu        sync.RWMutex
	docs      map[string]Document
	revisions map[string][]Revision // documentID -> revisions, oldest first
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs:      make(map[string]Document),
		revisions: make(map[string][]Revision),
	}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

// Get returns a document by id.
func (r *MemoryRepo) Get(ctx context.Context, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// UpdateHTML replaces the stored HTML for a document.
func (r *MemoryRepo) UpdateHTML(ctx context.Context, documentID, html string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return ErrNotFound
	}
	doc.HTML = html
	doc.UpdatedAt = updatedAt
	r.docs[documentID] = doc
	return nil
}

// AppendRevision stores a revision snapshot.
func (r *MemoryRepo) AppendRevision(ctx context.Context, rev Revision) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[rev.DocumentID]; !ok {
		return ErrNotFound
	}
	r.revisions[rev.DocumentID] = append(r.revisions[rev.DocumentID], rev)
	return nil
}

// ListRevisions returns revisions for a document, newest first, honoring
// limit.
func (r *MemoryRepo) ListRevisions(ctx context.Context, documentID string, limit int) ([]Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	revs := r.revisions[documentID]
	out := make([]Revision, 0, len(revs))
	for i := len(revs) - 1; i >= 0; i-- {
		out = append(out, revs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
