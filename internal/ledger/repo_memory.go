package ledger

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Record // documentID -> records in insertion order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Record)}
}

// Append stores the record unless the proposal id is already present for
// the document.
func (r *MemoryRepo) Append(ctx context.Context, documentID string, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data[documentID] {
		if existing.ProposalID == rec.ProposalID {
			return nil
		}
	}
	r.data[documentID] = append(r.data[documentID], rec)
	return nil
}

// UpdateStatus transitions a stored record to a terminal status. Records
// already terminal are left unchanged.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, documentID, proposalID string, status Status, resolvedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.data[documentID]
	for i := range records {
		if records[i].ProposalID != proposalID {
			continue
		}
		if records[i].Status.Terminal() {
			return nil
		}
		records[i].Status = status
		at := resolvedAt
		records[i].ResolvedAt = &at
		r.data[documentID] = records
		return nil
	}
	return ErrNotFound
}

// ListByDocument returns the records for a document in insertion order.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := r.data[documentID]
	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}
