package handler

import (
	"context"

	invoicingapp "github.com/billing/backend/internal/application/invoicing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoicingapp.InvoiceService
	renderService  *invoicingapp.RenderModelService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *invoicingapp.InvoiceService, renderService *invoicingapp.RenderModelService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		renderService:  renderService,
	}
}

// Create creates a draft invoice, consuming one unit of invoice quota
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req invoicingapp.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// List lists the user's invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter invoicingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid client_id")
			return
		}
		filter.ClientID = &clientID
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, invoices, total, page, pageSize)
}

// GetByID returns a single invoice with its items
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	h.withInvoice(c, h.invoiceService.GetByID)
}

// AddItem appends a line item to a draft invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}

	var req invoicingapp.CreateItemInput
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.AddItem(c.Request.Context(), userID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// UpdateItem updates a line item on a draft invoice
func (h *InvoiceHandler) UpdateItem(c *gin.Context) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req invoicingapp.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateItem(c.Request.Context(), userID, invoiceID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// RemoveItem removes a line item from a draft invoice
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	invoice, err := h.invoiceService.RemoveItem(c.Request.Context(), userID, invoiceID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// ApplyDiscount sets the document-level discount on a draft invoice
func (h *InvoiceHandler) ApplyDiscount(c *gin.Context) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}

	var req invoicingapp.ApplyDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.ApplyDiscount(c.Request.Context(), userID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// UpdateNote sets the invoice note
func (h *InvoiceHandler) UpdateNote(c *gin.Context) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}

	var req invoicingapp.UpdateNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateNote(c.Request.Context(), userID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Send marks the invoice as sent
func (h *InvoiceHandler) Send(c *gin.Context) {
	h.withInvoice(c, h.invoiceService.Send)
}

// MarkPaid marks a sent or overdue invoice as paid
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.withInvoice(c, h.invoiceService.MarkPaid)
}

// MarkOverdue marks a sent invoice as overdue
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	h.withInvoice(c, h.invoiceService.MarkOverdue)
}

// Cancel cancels the invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.withInvoice(c, h.invoiceService.Cancel)
}

// Delete removes a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), userID, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Render returns the flat read model the PDF renderer consumes. The stored
// totals are passed through untouched; an optional template query parameter
// picks the layout.
func (h *InvoiceHandler) Render(c *gin.Context) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}

	model, err := h.renderService.Resolve(c.Request.Context(), userID, invoiceID, c.Query("template"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, model)
}

// authAndID extracts the authenticated user and the invoice path ID
func (h *InvoiceHandler) authAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, invoiceID, true
}

type invoiceOp func(ctx context.Context, userID, invoiceID uuid.UUID) (*invoicingapp.InvoiceResponse, error)

// withInvoice runs a single-invoice operation and writes the result
func (h *InvoiceHandler) withInvoice(c *gin.Context, op invoiceOp) {
	userID, invoiceID, ok := h.authAndID(c)
	if !ok {
		return
	}

	invoice, err := op(c.Request.Context(), userID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}
