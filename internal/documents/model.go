package documents

import "time"

// Document is a persisted resume: one well-formed HTML string plus
// metadata. The live copy belongs to an editor session; this row is the
// durable snapshot.
type Document struct {
	ID        string
	Title     string
	HTML      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Revision is a point-in-time copy of a document's HTML, appended on
// every persisted save so intermediate states survive a crash.
type Revision struct {
	ID         string
	DocumentID string
	HTML       string
	CreatedAt  time.Time
}
