package handler

import (
	documentapp "github.com/billing/backend/internal/application/document"
	"github.com/billing/backend/internal/domain/document"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles rendered document endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.Service
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *documentapp.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// InitiateUpload returns a presigned URL for uploading a rendered PDF
func (h *DocumentHandler) InitiateUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req documentapp.InitiateUploadRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.documentService.InitiateUpload(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Record verifies the uploaded object and creates the document record
func (h *DocumentHandler) Record(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req documentapp.RecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.documentService.Record(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

// List lists the user's documents, optionally narrowed to a kind
func (h *DocumentHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := listFilter(c)
	if kind := c.Query("kind"); kind != "" {
		if kind != string(document.KindInvoice) && kind != string(document.KindQuotation) {
			h.BadRequest(c, "kind must be invoice or quotation")
			return
		}
		filter.Filters = map[string]interface{}{"kind": kind}
	}

	docs, err := h.documentService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docs)
}

// ListBySource lists the documents rendered for one invoice or quotation
func (h *DocumentHandler) ListBySource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	kind := document.Kind(c.Param("kind"))
	if kind != document.KindInvoice && kind != document.KindQuotation {
		h.BadRequest(c, "kind must be invoice or quotation")
		return
	}
	sourceID, err := parseIDParam(c, "source_id")
	if err != nil {
		h.BadRequest(c, "Invalid source ID")
		return
	}

	docs, err := h.documentService.ListBySource(c.Request.Context(), userID, kind, sourceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docs)
}

// GetByID returns one document with a fresh download URL
func (h *DocumentHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), userID, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Delete removes the document record and its stored object
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), userID, documentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
