package invoicing

import (
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CompanyProfileID *uuid.UUID        `json:"company_profile_id"` // nil resolves to the default profile
	ClientID         uuid.UUID         `json:"client_id" binding:"required"`
	Currency         string            `json:"currency"`
	Items            []CreateItemInput `json:"items"`
	Discount         *decimal.Decimal  `json:"discount"`
	Note             string            `json:"note"`
}

// CreateItemInput represents a line item in the create request
type CreateItemInput struct {
	Description     string          `json:"description" binding:"required,min=1,max=500"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// UpdateItemRequest represents a request to update a line item
type UpdateItemRequest struct {
	Description     *string          `json:"description"`
	Quantity        *decimal.Decimal `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// ApplyDiscountRequest represents a request to set the document discount
type ApplyDiscountRequest struct {
	Discount decimal.Decimal `json:"discount" binding:"required"`
}

// UpdateNoteRequest represents a request to set the invoice note
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// ListFilter represents invoice list filtering options
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	ClientID *uuid.UUID
}

// ItemResponse represents a line item in responses
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Amount          decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in responses
type InvoiceResponse struct {
	ID               uuid.UUID       `json:"id"`
	Number           string          `json:"number"`
	CompanyProfileID uuid.UUID       `json:"company_profile_id"`
	ClientID         uuid.UUID       `json:"client_id"`
	Country          string          `json:"country"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	Items            []ItemResponse  `json:"items"`
	Discount         decimal.Decimal `json:"discount"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	Note             string          `json:"note,omitempty"`
	SentAt           *time.Time      `json:"sent_at,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// InvoiceListItemResponse represents an invoice in list responses
type InvoiceListItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	ClientID  uuid.UUID       `json:"client_id"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToItemResponse converts a domain item to an ItemResponse
func ToItemResponse(item invoicing.Item) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Description:     item.Description,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		DiscountPercent: item.DiscountPercent,
		Amount:          item.Amount,
	}
}

// ToInvoiceResponse converts a domain invoice to an InvoiceResponse
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	items := make([]ItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, ToItemResponse(item))
	}

	return InvoiceResponse{
		ID:               inv.ID,
		Number:           inv.Number,
		CompanyProfileID: inv.CompanyProfileID,
		ClientID:         inv.ClientID,
		Country:          inv.Country,
		Currency:         string(inv.Currency),
		Status:           inv.Status.String(),
		Items:            items,
		Discount:         inv.Discount,
		TaxRate:          inv.TaxRate,
		Subtotal:         inv.Subtotal,
		Tax:              inv.Tax,
		Total:            inv.Total,
		Note:             inv.Note,
		SentAt:           inv.SentAt,
		PaidAt:           inv.PaidAt,
		CancelledAt:      inv.CancelledAt,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}

// ToInvoiceListItemResponse converts a domain invoice to a list item
func ToInvoiceListItemResponse(inv invoicing.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:        inv.ID,
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		Currency:  string(inv.Currency),
		Status:    inv.Status.String(),
		Total:     inv.Total,
		CreatedAt: inv.CreatedAt,
	}
}
