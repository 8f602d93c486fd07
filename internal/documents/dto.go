package documents

import "time"

type documentResponse struct {
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	HTML       string    `json:"html"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type revisionResponse struct {
	RevisionID string    `json:"revisionId"`
	HTML       string    `json:"html"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(doc Document) documentResponse {
	return documentResponse{
		DocumentID: doc.ID,
		Title:      doc.Title,
		HTML:       doc.HTML,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func toRevisionResponses(revs []Revision) []revisionResponse {
	out := make([]revisionResponse, 0, len(revs))
	for _, rev := range revs {
		out = append(out, revisionResponse{
			RevisionID: rev.ID,
			HTML:       rev.HTML,
			CreatedAt:  rev.CreatedAt,
		})
	}
	return out
}
