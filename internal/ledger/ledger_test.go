package ledger

import (
	"errors"
	"testing"
)

func TestAppendIsIdempotentPerProposalID(t *testing.T) {
	l := New()
	p := Proposal{ID: "prop-1", OldFragment: "<p>a</p>", NewFragment: "<p>b</p>"}

	first, inserted := l.Append(p, "diff-1")
	if !inserted {
		t.Fatalf("expected first append to insert")
	}
	second, inserted := l.Append(p, "diff-other")
	if inserted {
		t.Fatalf("expected duplicate append to be a no-op")
	}
	if second.DiffFragment != first.DiffFragment {
		t.Fatalf("duplicate append changed the stored record")
	}
	if got := len(l.All()); got != 1 {
		t.Fatalf("expected 1 record, got %d", got)
	}
}

func TestResolveIsMonotonic(t *testing.T) {
	l := New()
	l.Append(Proposal{ID: "prop-1"}, "")

	rec, err := l.Resolve("prop-1", StatusAccepted)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rec.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", rec.Status)
	}
	if rec.ResolvedAt == nil {
		t.Fatalf("expected ResolvedAt to be set")
	}

	again, err := l.Resolve("prop-1", StatusRejected)
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if again.Status != StatusAccepted {
		t.Fatalf("terminal record changed to %s", again.Status)
	}
}

func TestResolveRejectsNonTerminalStatus(t *testing.T) {
	l := New()
	l.Append(Proposal{ID: "prop-1"}, "")

	if _, err := l.Resolve("prop-1", StatusPending); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestResolveUnknownID(t *testing.T) {
	l := New()
	if _, err := l.Resolve("missing", StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPendingNewestFirst(t *testing.T) {
	l := New()
	l.Append(Proposal{ID: "a"}, "")
	l.Append(Proposal{ID: "b"}, "")
	l.Append(Proposal{ID: "c"}, "")
	if _, err := l.Resolve("b", StatusAccepted); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	pending := l.PendingNewestFirst()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	if pending[0].ProposalID != "c" || pending[1].ProposalID != "a" {
		t.Fatalf("expected order c,a got %s,%s", pending[0].ProposalID, pending[1].ProposalID)
	}
}

func TestLastPending(t *testing.T) {
	l := New()
	if _, ok := l.LastPending(); ok {
		t.Fatalf("expected no pending record in empty ledger")
	}

	l.Append(Proposal{ID: "a"}, "")
	l.Append(Proposal{ID: "b"}, "")
	if _, err := l.Resolve("b", StatusStopped); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	last, ok := l.LastPending()
	if !ok || last.ProposalID != "a" {
		t.Fatalf("expected last pending a, got %v %v", last.ProposalID, ok)
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	l := New()
	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		l.Append(Proposal{ID: id}, "")
	}

	all := l.All()
	if len(all) != len(ids) {
		t.Fatalf("expected %d records, got %d", len(ids), len(all))
	}
	for i, id := range ids {
		if all[i].ProposalID != id {
			t.Fatalf("expected %s at index %d, got %s", id, i, all[i].ProposalID)
		}
	}
}
