package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, title, html, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctx, query, doc.ID, doc.Title, doc.HTML, doc.CreatedAt, doc.UpdatedAt)
	return err
}

// Get returns a document by id.
func (r *PGRepo) Get(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT id, title, html, created_at, updated_at
FROM documents
WHERE id = $1`

	var doc Document
	err := r.DB.QueryRowContext(ctx, query, documentID).
		Scan(&doc.ID, &doc.Title, &doc.HTML, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// UpdateHTML replaces the stored HTML for a document.
func (r *PGRepo) UpdateHTML(ctx context.Context, documentID, html string, updatedAt time.Time) error {
	const query = `
UPDATE documents
SET html = $1, updated_at = $2
WHERE id = $3`

	res, err := r.DB.ExecContext(ctx, query, html, updatedAt, documentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendRevision stores a revision snapshot.
func (r *PGRepo) AppendRevision(ctx context.Context, rev Revision) error {
	const query = `
INSERT INTO document_revisions (id, document_id, html, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.DB.ExecContext(ctx, query, rev.ID, rev.DocumentID, rev.HTML, rev.CreatedAt)
	return err
}

// ListRevisions returns revisions for a document, newest first.
func (r *PGRepo) ListRevisions(ctx context.Context, documentID string, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT id, document_id, html, created_at
FROM document_revisions
WHERE document_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, documentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.DocumentID, &rev.HTML, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
