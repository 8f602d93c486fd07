package ledger

import (
	"sync"
	"time"
)

// Ledger is an ordered, append-only log of change records for one editor
// session. Insertion order is the causal order of proposals. Entries are
// never removed, only status-updated. Safe for concurrent use.
type Ledger struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Record
}

// New constructs an empty Ledger.
func New() *Ledger {
	return &Ledger{byID: make(map[string]Record)}
}

// Append records a pending entry for the proposal. Appending an id that is
// already present returns the existing record unchanged, so duplicate or
// retried deliveries from the generator collapse into one entry. The
// second return value reports whether a new record was inserted.
func (l *Ledger) Append(p Proposal, diffFragment string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.byID[p.ID]; ok {
		return existing, false
	}

	rec := Record{
		ProposalID:   p.ID,
		Proposal:     p,
		Status:       StatusPending,
		DiffFragment: diffFragment,
		CreatedAt:    time.Now().UTC(),
	}
	l.byID[p.ID] = rec
	l.order = append(l.order, p.ID)
	return rec, true
}

// Resolve transitions a record to a terminal status. Transitions are
// monotonic: a record that already reached a terminal status is returned
// unchanged with ErrAlreadyResolved.
func (l *Ledger) Resolve(proposalID string, status Status) (Record, error) {
	if !status.Terminal() {
		return Record{}, ErrInvalidStatus
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.byID[proposalID]
	if !ok {
		return Record{}, ErrNotFound
	}
	if rec.Status.Terminal() {
		return rec, ErrAlreadyResolved
	}

	now := time.Now().UTC()
	rec.Status = status
	rec.ResolvedAt = &now
	l.byID[proposalID] = rec
	return rec, nil
}

// Get returns the record for a proposal id.
func (l *Ledger) Get(proposalID string) (Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.byID[proposalID]
	return rec, ok
}

// All returns every record in insertion order.
func (l *Ledger) All() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// PendingNewestFirst returns the pending records in reverse insertion
// order. Bulk accept/reject resolves the most recent proposal first.
func (l *Ledger) PendingNewestFirst() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, 0, len(l.order))
	for i := len(l.order) - 1; i >= 0; i-- {
		rec := l.byID[l.order[i]]
		if rec.Status == StatusPending {
			out = append(out, rec)
		}
	}
	return out
}

// LastPending returns the most recently inserted record that is still
// pending, if any.
func (l *Ledger) LastPending() (Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.order) - 1; i >= 0; i-- {
		rec := l.byID[l.order[i]]
		if rec.Status == StatusPending {
			return rec, true
		}
	}
	return Record{}, false
}
