package sessions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-editor/internal/documents"
	"resume-editor/internal/ledger"
	"resume-editor/internal/patch"
	"resume-editor/internal/shared/telemetry"
	"resume-editor/internal/shared/util"
)

// Service manages editor sessions. Documents is the persistence gateway
// written through after every applied change; History keeps the change
// ledger durable across restarts.
type Service struct {
	Documents *documents.Service
	History   ledger.Repo

	// BulkStepDelay paces bulk accept/reject, one record at a time, so
	// the review animation stays legible.
	BulkStepDelay time.Duration

	// SaveDebounce coalesces rapid direct edits into one persisted save.
	SaveDebounce time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService constructs a Service.
func NewService(docs *documents.Service, history ledger.Repo, bulkStepDelay, saveDebounce time.Duration) *Service {
	return &Service{
		Documents:     docs,
		History:       history,
		BulkStepDelay: bulkStepDelay,
		SaveDebounce:  saveDebounce,
		sessions:      make(map[string]*Session),
	}
}

// Open loads the document and starts an editor session on it.
func (s *Service) Open(ctx context.Context, documentID string) (*Session, error) {
	doc, err := s.Documents.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		CreatedAt:  time.Now().UTC(),
		html:       doc.HTML,
		ledger:     ledger.New(),
		saver:      util.NewDebouncer(s.SaveDebounce),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

// Get returns an open session by id.
func (s *Service) Get(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// DocumentHTML returns the current live HTML. Upstream generators call
// this to re-derive a fresh proposal after a not_found resolution.
func (s *Service) DocumentHTML(sessionID string) (string, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.html, nil
}

// SetDocumentHTML replaces the live HTML with a direct user edit. The
// persisted save is debounced; a crash before the delay elapses loses
// only the unsaved delta.
func (s *Service) SetDocumentHTML(ctx context.Context, sessionID, html string) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.html = html
	documentID := sess.DocumentID
	sess.mu.Unlock()

	sess.saver.Trigger(func() {
		if err := s.Documents.Save(context.Background(), documentID, html); err != nil {
			telemetry.Error("session.save_failed", map[string]any{
				"session_id":  sessionID,
				"document_id": documentID,
				"error":       err.Error(),
			})
		}
	})
	return nil
}

// Propose records a pending change. Proposals with an empty old or new
// fragment are malformed and dropped without creating a record. Duplicate
// ids collapse into the existing record; validation of the old fragment
// happens at decision time, not here.
func (s *Service) Propose(ctx context.Context, sessionID string, p ledger.Proposal) (ledger.Record, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return ledger.Record{}, err
	}

	if strings.TrimSpace(p.OldFragment) == "" || strings.TrimSpace(p.NewFragment) == "" {
		telemetry.Warn("session.proposal_dropped", map[string]any{
			"session_id":  sessionID,
			"proposal_id": p.ID,
		})
		return ledger.Record{}, ErrMalformedProposal
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	diff := patch.RenderDiff(p.OldFragment, p.NewFragment, p.ID)

	sess.mu.Lock()
	rec, inserted := sess.ledger.Append(p, diff)
	sess.mu.Unlock()

	if inserted {
		if err := s.History.Append(ctx, sess.DocumentID, rec); err != nil {
			telemetry.Error("session.history_append_failed", map[string]any{
				"session_id":  sessionID,
				"proposal_id": p.ID,
				"error":       err.Error(),
			})
		}
	}
	return rec, nil
}

// Accept applies a pending proposal to the document.
func (s *Service) Accept(ctx context.Context, sessionID, proposalID string) (ledger.Record, error) {
	return s.decide(ctx, sessionID, proposalID, true)
}

// Reject reverts a pending proposal from the document.
func (s *Service) Reject(ctx context.Context, sessionID, proposalID string) (ledger.Record, error) {
	return s.decide(ctx, sessionID, proposalID, false)
}

func (s *Service) decide(ctx context.Context, sessionID, proposalID string, accept bool) (ledger.Record, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return ledger.Record{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.busy {
		return ledger.Record{}, ErrLedgerBusy
	}
	return s.decideLocked(ctx, sess, proposalID, accept)
}

// decideLocked resolves one record. Callers hold sess.mu, so the apply,
// the status transition, and the persisted save are one atomic step from
// any other reader's perspective.
func (s *Service) decideLocked(ctx context.Context, sess *Session, proposalID string, accept bool) (ledger.Record, error) {
	rec, ok := sess.ledger.Get(proposalID)
	if !ok {
		return ledger.Record{}, ledger.ErrNotFound
	}
	if rec.Status.Terminal() {
		telemetry.Info("session.decision_noop", map[string]any{
			"session_id":  sess.ID,
			"proposal_id": proposalID,
			"status":      string(rec.Status),
		})
		return rec, nil
	}

	p := rec.Proposal
	var next string
	var applyErr error
	if accept {
		next, applyErr = patch.Apply(sess.html, p.OldFragment, p.NewFragment, p.TargetElementID)
	} else {
		// Rejecting reverts the previewed change: new back to old.
		next, applyErr = patch.Apply(sess.html, p.NewFragment, p.OldFragment, p.TargetElementID)
	}

	status := ledger.StatusAccepted
	if !accept {
		status = ledger.StatusRejected
	}
	if applyErr != nil {
		// The document changed since the proposal was generated (or the
		// target element is gone). The record dead-ends; a retry needs a
		// fresh proposal derived from the current document.
		status = ledger.StatusNotFound
		telemetry.Info("session.fragment_not_found", map[string]any{
			"session_id":  sess.ID,
			"proposal_id": proposalID,
			"error":       applyErr.Error(),
		})
	}

	resolved, err := sess.ledger.Resolve(proposalID, status)
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyResolved) {
			return resolved, nil
		}
		return ledger.Record{}, err
	}

	if status != ledger.StatusNotFound {
		sess.html = next
		// Persist before the next mutation is admitted so a crash loses
		// at most the change in flight.
		if err := s.Documents.Save(ctx, sess.DocumentID, next); err != nil {
			telemetry.Error("session.save_failed", map[string]any{
				"session_id":  sess.ID,
				"document_id": sess.DocumentID,
				"error":       err.Error(),
			})
		}
	}

	s.updateHistory(ctx, sess.DocumentID, resolved)
	return resolved, nil
}

// AcceptAll resolves every pending record, most recent first.
func (s *Service) AcceptAll(ctx context.Context, sessionID string) ([]ledger.Record, error) {
	return s.decideAll(ctx, sessionID, true)
}

// RejectAll reverts every pending record, most recent first.
func (s *Service) RejectAll(ctx context.Context, sessionID string) ([]ledger.Record, error) {
	return s.decideAll(ctx, sessionID, false)
}

func (s *Service) decideAll(ctx context.Context, sessionID string, accept bool) ([]ledger.Record, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.busy {
		sess.mu.Unlock()
		return nil, ErrLedgerBusy
	}
	sess.busy = true
	pending := sess.ledger.PendingNewestFirst()
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.busy = false
		sess.mu.Unlock()
	}()

	out := make([]ledger.Record, 0, len(pending))
	for i, rec := range pending {
		if i > 0 && s.BulkStepDelay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(s.BulkStepDelay):
			}
		}

		sess.mu.Lock()
		resolved, err := s.decideLocked(ctx, sess, rec.ProposalID, accept)
		sess.mu.Unlock()
		if err != nil {
			return out, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// Stop handles a cancelled generator stream: the most recent pending
// record is forced to the terminal stopped status so the ledger never
// retains unresolved entries past stream end. The second return value
// reports whether a record was stopped.
func (s *Service) Stop(ctx context.Context, sessionID string) (ledger.Record, bool, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return ledger.Record{}, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	rec, ok := sess.ledger.LastPending()
	if !ok {
		return ledger.Record{}, false, nil
	}
	resolved, err := sess.ledger.Resolve(rec.ProposalID, ledger.StatusStopped)
	if err != nil {
		return ledger.Record{}, false, err
	}

	s.updateHistory(ctx, sess.DocumentID, resolved)
	return resolved, true, nil
}

// Records returns the session's ledger in insertion order.
func (s *Service) Records(sessionID string) ([]ledger.Record, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.ledger.All(), nil
}

func (s *Service) updateHistory(ctx context.Context, documentID string, rec ledger.Record) {
	resolvedAt := time.Now().UTC()
	if rec.ResolvedAt != nil {
		resolvedAt = *rec.ResolvedAt
	}
	if err := s.History.UpdateStatus(ctx, documentID, rec.ProposalID, rec.Status, resolvedAt); err != nil {
		telemetry.Error("session.history_update_failed", map[string]any{
			"document_id": documentID,
			"proposal_id": rec.ProposalID,
			"error":       err.Error(),
		})
	}
}
