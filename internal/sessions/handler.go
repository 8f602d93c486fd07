package sessions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-editor/internal/documents"
	"resume-editor/internal/ledger"
	"resume-editor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.open)
	rg.GET("/sessions/:id/document", h.document)
	rg.PUT("/sessions/:id/document", h.setDocument)
	rg.POST("/sessions/:id/proposals", h.propose)
	rg.POST("/sessions/:id/proposals/:proposalId/accept", h.accept)
	rg.POST("/sessions/:id/proposals/:proposalId/reject", h.reject)
	rg.POST("/sessions/:id/accept-all", h.acceptAll)
	rg.POST("/sessions/:id/reject-all", h.rejectAll)
	rg.POST("/sessions/:id/stop", h.stop)
	rg.GET("/sessions/:id/ledger", h.records)
}

type openRequest struct {
	DocumentID string `json:"documentId"`
}

func (h *Handler) open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId is required", nil)
		return
	}

	sess, err := h.Svc.Open(c.Request.Context(), req.DocumentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to open session", err.Error())
		return
	}
	c.Set("sessionId", sess.ID)
	c.Set("documentId", sess.DocumentID)
	respond.JSON(c, http.StatusCreated, toSessionResponse(sess))
}

func (h *Handler) document(c *gin.Context) {
	html, err := h.Svc.DocumentHTML(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		return
	}
	respond.OK(c, documentResponse{HTML: html})
}

type setDocumentRequest struct {
	HTML string `json:"html"`
}

func (h *Handler) setDocument(c *gin.Context) {
	var req setDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.SetDocumentHTML(c.Request.Context(), c.Param("id"), req.HTML); err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		return
	}
	respond.OK(c, documentResponse{HTML: req.HTML})
}

type proposeRequest struct {
	ID              string `json:"id"`
	OldFragment     string `json:"oldFragment"`
	NewFragment     string `json:"newFragment"`
	TargetElementID string `json:"targetElementId"`
}

func (h *Handler) propose(c *gin.Context) {
	var req proposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rec, err := h.Svc.Propose(c.Request.Context(), c.Param("id"), ledger.Proposal{
		ID:              strings.TrimSpace(req.ID),
		OldFragment:     req.OldFragment,
		NewFragment:     req.NewFragment,
		TargetElementID: strings.TrimSpace(req.TargetElementID),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		case errors.Is(err, ErrMalformedProposal):
			respond.Error(c, http.StatusBadRequest, "validation_error", "oldFragment and newFragment are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to record proposal", err.Error())
		}
		return
	}
	c.Set("proposalId", rec.ProposalID)
	respond.JSON(c, http.StatusCreated, toRecordResponse(rec))
}

func (h *Handler) accept(c *gin.Context) {
	h.decide(c, true)
}

func (h *Handler) reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *Handler) decide(c *gin.Context, accept bool) {
	sessionID := c.Param("id")
	proposalID := c.Param("proposalId")
	c.Set("proposalId", proposalID)

	var (
		rec ledger.Record
		err error
	)
	if accept {
		rec, err = h.Svc.Accept(c.Request.Context(), sessionID, proposalID)
	} else {
		rec, err = h.Svc.Reject(c.Request.Context(), sessionID, proposalID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ledger.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session or proposal not found", nil)
		case errors.Is(err, ErrLedgerBusy):
			respond.Error(c, http.StatusConflict, "ledger_busy", "a bulk operation is in progress", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to resolve proposal", err.Error())
		}
		return
	}
	respond.OK(c, toRecordResponse(rec))
}

func (h *Handler) acceptAll(c *gin.Context) {
	h.decideAll(c, true)
}

func (h *Handler) rejectAll(c *gin.Context) {
	h.decideAll(c, false)
}

func (h *Handler) decideAll(c *gin.Context, accept bool) {
	sessionID := c.Param("id")

	var (
		records []ledger.Record
		err     error
	)
	if accept {
		records, err = h.Svc.AcceptAll(c.Request.Context(), sessionID)
	} else {
		records, err = h.Svc.RejectAll(c.Request.Context(), sessionID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		case errors.Is(err, ErrLedgerBusy):
			respond.Error(c, http.StatusConflict, "ledger_busy", "a bulk operation is already in progress", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "bulk resolve failed", err.Error())
		}
		return
	}
	respond.OK(c, gin.H{"resolved": toRecordResponses(records)})
}

func (h *Handler) stop(c *gin.Context) {
	rec, stopped, err := h.Svc.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		return
	}
	if !stopped {
		respond.OK(c, gin.H{"stopped": false})
		return
	}
	respond.OK(c, gin.H{"stopped": true, "record": toRecordResponse(rec)})
}

func (h *Handler) records(c *gin.Context) {
	records, err := h.Svc.Records(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		return
	}
	respond.OK(c, gin.H{"records": toRecordResponses(records)})
}
