package quotation

import (
	"time"

	"github.com/billing/backend/internal/domain/quotation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateQuotationRequest represents a request to create a quotation
type CreateQuotationRequest struct {
	CompanyProfileID *uuid.UUID        `json:"company_profile_id"` // nil resolves to the default profile
	ClientID         uuid.UUID         `json:"client_id" binding:"required"`
	Currency         string            `json:"currency"`
	Items            []CreateItemInput `json:"items"`
	Discount         *decimal.Decimal  `json:"discount"`
	Note             string            `json:"note"`
	ValidUntil       *time.Time        `json:"valid_until"`
}

// CreateItemInput represents a line item in the create request. A set
// MasterItemID links the line to a curated catalog item and feeds the
// material usage ledger.
type CreateItemInput struct {
	MasterItemID    *uuid.UUID      `json:"master_item_id"`
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

// ListFilter represents quotation list filtering options
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
	MasterItemID    *uuid.UUID      `json:"master_item_id,omitempty"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Amount          decimal.Decimal `json:"amount"`
}

// QuotationResponse represents a quotation in responses
type QuotationResponse struct {
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
	ValidUntil       *time.Time      `json:"valid_until,omitempty"`
	ConvertedInvoice *uuid.UUID      `json:"converted_invoice,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// QuotationListItemResponse represents a quotation in list responses
type QuotationListItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	ClientID  uuid.UUID       `json:"client_id"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToItemResponse converts a domain item to an ItemResponse
func ToItemResponse(item quotation.Item) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		MasterItemID:    item.MasterItemID,
		Description:     item.Description,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		DiscountPercent: item.DiscountPercent,
		Amount:          item.Amount,
	}
}

// ToQuotationResponse converts a domain quotation to a QuotationResponse
func ToQuotationResponse(q *quotation.Quotation) QuotationResponse {
	items := make([]ItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, ToItemResponse(item))
	}

	return QuotationResponse{
		ID:               q.ID,
		Number:           q.Number,
		CompanyProfileID: q.CompanyProfileID,
		ClientID:         q.ClientID,
		Country:          q.Country,
		Currency:         string(q.Currency),
		Status:           q.Status.String(),
		Items:            items,
		Discount:         q.Discount,
		TaxRate:          q.TaxRate,
		Subtotal:         q.Subtotal,
		Tax:              q.Tax,
		Total:            q.Total,
		Note:             q.Note,
		ValidUntil:       q.ValidUntil,
		ConvertedInvoice: q.ConvertedInvoice,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// ToQuotationListItemResponse converts a domain quotation to a list item
func ToQuotationListItemResponse(q quotation.Quotation) QuotationListItemResponse {
	return QuotationListItemResponse{
		ID:        q.ID,
		Number:    q.Number,
		ClientID:  q.ClientID,
		Currency:  string(q.Currency),
		Status:    q.Status.String(),
		Total:     q.Total,
		CreatedAt: q.CreatedAt,
	}
}
