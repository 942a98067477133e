package handler

import (
	"context"

	quotationapp "github.com/billing/backend/internal/application/quotation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationHandler handles quotation endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *quotationapp.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *quotationapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// ConvertResponse carries the converted quotation and the new invoice ID
type ConvertResponse struct {
	Quotation *quotationapp.QuotationResponse `json:"quotation"`
	InvoiceID uuid.UUID                       `json:"invoice_id"`
}

// Create creates a draft quotation, consuming one unit of quote quota
func (h *QuotationHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req quotationapp.CreateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	quote, err := h.quotationService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quote)
}

// List lists the user's quotations
func (h *QuotationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter quotationapp.ListFilter
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

	quotes, total, err := h.quotationService.List(c.Request.Context(), userID, filter)
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
	h.SuccessWithMeta(c, quotes, total, page, pageSize)
}

// GetByID returns a single quotation with its items
func (h *QuotationHandler) GetByID(c *gin.Context) {
	h.withQuotation(c, h.quotationService.GetByID)
}

// AddItem appends a line item; master-catalog items also record material usage
func (h *QuotationHandler) AddItem(c *gin.Context) {
	userID, quotationID, ok := h.authAndID(c)
	if !ok {
		return
	}

	var req quotationapp.CreateItemInput
	if !h.BindJSON(c, &req) {
		return
	}

	quote, err := h.quotationService.AddItem(c.Request.Context(), userID, quotationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// UpdateItem updates a line item on a draft quotation
func (h *QuotationHandler) UpdateItem(c *gin.Context) {
	userID, quotationID, ok := h.authAndID(c)
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req quotationapp.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	quote, err := h.quotationService.UpdateItem(c.Request.Context(), userID, quotationID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// RemoveItem removes a line item from a draft quotation
func (h *QuotationHandler) RemoveItem(c *gin.Context) {
	userID, quotationID, ok := h.authAndID(c)
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "item_id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	quote, err := h.quotationService.RemoveItem(c.Request.Context(), userID, quotationID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// ApplyDiscount sets the document-level discount on a draft quotation
func (h *QuotationHandler) ApplyDiscount(c *gin.Context) {
	userID, quotationID, ok := h.authAndID(c)
	if !ok {
		return
	}

	var req quotationapp.ApplyDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	quote, err := h.quotationService.ApplyDiscount(c.Request.Context(), userID, quotationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Send marks the quotation as sent
func (h *QuotationHandler) Send(c *gin.Context) {
	h.withQuotation(c, h.quotationService.Send)
}

// Accept marks a sent quotation as accepted
func (h *QuotationHandler) Accept(c *gin.Context) {
	h.withQuotation(c, h.quotationService.Accept)
}

// Decline marks a sent quotation as declined
func (h *QuotationHandler) Decline(c *gin.Context) {
	h.withQuotation(c, h.quotationService.Decline)
}

// Cancel cancels the quotation
func (h *QuotationHandler) Cancel(c *gin.Context) {
	h.withQuotation(c, h.quotationService.Cancel)
}

// Convert turns an accepted quotation into a new draft invoice
func (h *QuotationHandler) Convert(c *gin.Context) {
	userID, quotationID, ok := h.authAndID(c)
	if !ok {
		return
	}

	quote, invoiceID, err := h.quotationService.ConvertToInvoice(c.Request.Context(), userID, quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ConvertResponse{Quotation: quote, InvoiceID: invoiceID})
}

// Delete removes a draft quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	userID, quotationID, ok := h.authAndID(c)
	if !ok {
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), userID, quotationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *QuotationHandler) authAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, quotationID, true
}

type quotationOp func(ctx context.Context, userID, quotationID uuid.UUID) (*quotationapp.QuotationResponse, error)

func (h *QuotationHandler) withQuotation(c *gin.Context, op quotationOp) {
	userID, quotationID, ok := h.authAndID(c)
	if !ok {
		return
	}

	quote, err := op(c.Request.Context(), userID, quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}
