package documents

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-editor/internal/extract"
)

// Service contains business logic for documents. Save is the persistence
// gateway editor sessions write through after every applied change.
type Service struct {
	Repo Repo
}

// Create stores a new document from raw HTML.
func (s *Service) Create(ctx context.Context, title, html string) (Document, error) {
	if strings.TrimSpace(html) == "" {
		return Document{}, ErrInvalidInput
	}
	if strings.TrimSpace(title) == "" {
		title = "Untitled resume"
	}

	now := time.Now().UTC()
	doc := Document{
		ID:        uuid.NewString(),
		Title:     title,
		HTML:      html,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Import extracts text from an uploaded PDF resume and stores it as a
// fresh HTML document.
func (s *Service) Import(ctx context.Context, title string, pdfData []byte) (Document, error) {
	text, err := extract.Text(ctx, pdfData)
	if err != nil {
		return Document{}, err
	}
	html := extract.HTMLFromText(text)
	if html == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Create(ctx, title, html)
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, documentID)
}

// Save persists the current HTML for a document and appends a revision
// snapshot. Best-effort durability: callers treat failures as
// non-fatal and keep editing against the live copy.
func (s *Service) Save(ctx context.Context, documentID, html string) error {
	if documentID == "" {
		return ErrInvalidInput
	}
	now := time.Now().UTC()
	if err := s.Repo.UpdateHTML(ctx, documentID, html, now); err != nil {
		return err
	}
	return s.Repo.AppendRevision(ctx, Revision{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		HTML:       html,
		CreatedAt:  now,
	})
}

// Revisions returns the persisted revision history, newest first.
func (s *Service) Revisions(ctx context.Context, documentID string, limit int) ([]Revision, error) {
	if documentID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListRevisions(ctx, documentID, limit)
}
