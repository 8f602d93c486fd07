package sessions

import (
	"time"

	"resume-editor/internal/ledger"
)

type sessionResponse struct {
	SessionID  string    `json:"sessionId"`
	DocumentID string    `json:"documentId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type documentResponse struct {
	HTML string `json:"html"`
}

type recordResponse struct {
	ProposalID      string     `json:"proposalId"`
	OldFragment     string     `json:"oldFragment"`
	NewFragment     string     `json:"newFragment"`
	TargetElementID string     `json:"targetElementId,omitempty"`
	Status          string     `json:"status"`
	DiffFragment    string     `json:"diffFragment"`
	CreatedAt       time.Time  `json:"createdAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
}

func toSessionResponse(sess *Session) sessionResponse {
	return sessionResponse{
		SessionID:  sess.ID,
		DocumentID: sess.DocumentID,
		CreatedAt:  sess.CreatedAt,
	}
}

func toRecordResponse(rec ledger.Record) recordResponse {
	return recordResponse{
		ProposalID:      rec.ProposalID,
		OldFragment:     rec.Proposal.OldFragment,
		NewFragment:     rec.Proposal.NewFragment,
		TargetElementID: rec.Proposal.TargetElementID,
		Status:          string(rec.Status),
		DiffFragment:    rec.DiffFragment,
		CreatedAt:       rec.CreatedAt,
		ResolvedAt:      rec.ResolvedAt,
	}
}

func toRecordResponses(records []ledger.Record) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	return out
}
