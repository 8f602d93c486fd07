package ledger

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts the record; a duplicate proposal id for the same
// document is ignored so retried deliveries stay idempotent.
func (r *PGRepo) Append(ctx context.Context, documentID string, rec Record) error {
	const query = `
INSERT INTO change_records (
    document_id,
    proposal_id,
    old_fragment,
    new_fragment,
    target_element_id,
    status,
    diff_fragment,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (document_id, proposal_id) DO NOTHING`

	var targetID sql.NullString
	if rec.Proposal.TargetElementID != "" {
		targetID = sql.NullString{String: rec.Proposal.TargetElementID, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		documentID,
		rec.ProposalID,
		rec.Proposal.OldFragment,
		rec.Proposal.NewFragment,
		targetID,
		string(rec.Status),
		rec.DiffFragment,
		rec.CreatedAt,
	)
	return err
}

// UpdateStatus transitions a stored record to a terminal status. The
// WHERE clause keeps the transition monotonic: terminal rows never change.
func (r *PGRepo) UpdateStatus(ctx context.Context, documentID, proposalID string, status Status, resolvedAt time.Time) error {
	const query = `
UPDATE change_records
SET status = $1, resolved_at = $2
WHERE document_id = $3 AND proposal_id = $4 AND status = 'pending'`

	_, err := r.DB.ExecContext(ctx, query, string(status), resolvedAt, documentID, proposalID)
	return err
}

// ListByDocument returns the records for a document in insertion order.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID string) ([]Record, error) {
	const query = `
SELECT proposal_id, old_fragment, new_fragment, target_element_id, status, diff_fragment, created_at, resolved_at
FROM change_records
WHERE document_id = $1
ORDER BY created_at ASC, proposal_id ASC`

	rows, err := r.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec        Record
			targetID   sql.NullString
			status     string
			resolvedAt sql.NullTime
		)
		if err := rows.Scan(
			&rec.ProposalID,
			&rec.Proposal.OldFragment,
			&rec.Proposal.NewFragment,
			&targetID,
			&status,
			&rec.DiffFragment,
			&rec.CreatedAt,
			&resolvedAt,
		); err != nil {
			return nil, err
		}
		rec.Proposal.ID = rec.ProposalID
		if targetID.Valid {
			rec.Proposal.TargetElementID = targetID.String
		}
		rec.Status = Status(status)
		if resolvedAt.Valid {
			at := resolvedAt.Time
			rec.ResolvedAt = &at
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
