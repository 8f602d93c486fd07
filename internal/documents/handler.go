package documents

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-editor/internal/shared/server/respond"
)

const maxImportSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.create)
	rg.POST("/documents/import", h.importPDF)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/revisions", h.revisions)
}

type createRequest struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "html is required", nil)
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), req.Title, req.HTML)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create document", err.Error())
		return
	}
	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) importPDF(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	doc, err := h.Svc.Import(c.Request.Context(), c.PostForm("title"), data)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "no extractable content", nil)
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_error", "failed to import PDF", err.Error())
		return
	}
	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load document", err.Error())
		return
	}
	respond.OK(c, toResponse(doc))
}

func (h *Handler) revisions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	revs, err := h.Svc.Revisions(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list revisions", err.Error())
		return
	}
	respond.OK(c, gin.H{"revisions": toRevisionResponses(revs)})
}
