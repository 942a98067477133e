package catalog

import (
	"time"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCompanyItemRequest represents a request to create a company item.
// A set MasterItemID prefills category, name, unit and price from the
// curated entry; explicit fields win over the prefill.
type CreateCompanyItemRequest struct {
	MasterItemID *uuid.UUID       `json:"master_item_id"`
	Category     string           `json:"category"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	Price        *decimal.Decimal `json:"price"`
}

// UpdateCompanyItemRequest represents a request to update a company item
type UpdateCompanyItemRequest struct {
	Category *string          `json:"category"`
	Name     *string          `json:"name"`
	Unit     *string          `json:"unit"`
	Price    *decimal.Decimal `json:"price"`
}

// CompanyItemResponse represents a company item in responses
type CompanyItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	MasterItemID *uuid.UUID      `json:"master_item_id,omitempty"`
	Category     string          `json:"category"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateCompanyTermRequest represents a request to create a company term
type CreateCompanyTermRequest struct {
	MasterTermID *uuid.UUID `json:"master_term_id"`
	Category     string     `json:"category" binding:"required"`
	Title        string     `json:"title" binding:"required"`
	Content      string     `json:"content" binding:"required"`
	MakeDefault  bool       `json:"make_default"`
}

// UpdateCompanyTermRequest represents a request to update a company term
type UpdateCompanyTermRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CompanyTermResponse represents a company term in responses
type CompanyTermResponse struct {
	ID           uuid.UUID  `json:"id"`
	MasterTermID *uuid.UUID `json:"master_term_id,omitempty"`
	Category     string     `json:"category"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	IsDefault    bool       `json:"is_default"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MasterItemResponse represents a curated catalog item in responses
type MasterItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Category     string          `json:"category"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// MasterTermResponse represents a curated term in responses
type MasterTermResponse struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Code     string    `json:"code"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
}

// TaxRateResponse represents a tax rate in responses
type TaxRateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Country   string          `json:"country"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsDefault bool            `json:"is_default"`
}

// TemplateResponse represents a template in responses
type TemplateResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsPremium bool      `json:"is_premium"`
}

// ToCompanyItemResponse converts a domain company item
func ToCompanyItemResponse(i *catalog.CompanyItem) CompanyItemResponse {
	return CompanyItemResponse{
		ID:           i.ID,
		MasterItemID: i.MasterItemID,
		Category:     i.Category,
		Name:         i.Name,
		Unit:         i.Unit,
		Price:        i.Price,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ToCompanyTermResponse converts a domain company term
func ToCompanyTermResponse(term *catalog.CompanyTerm) CompanyTermResponse {
	return CompanyTermResponse{
		ID:           term.ID,
		MasterTermID: term.MasterTermID,
		Category:     term.Category,
		Title:        term.Title,
		Content:      term.Content,
		IsDefault:    term.IsDefault,
		CreatedAt:    term.CreatedAt,
		UpdatedAt:    term.UpdatedAt,
	}
}

// ToMasterItemResponse converts a domain master item
func ToMasterItemResponse(i *catalog.MasterItem) MasterItemResponse {
	return MasterItemResponse{
		ID:           i.ID,
		Category:     i.Category,
		Code:         i.Code,
		Name:         i.Name,
		Unit:         i.Unit,
		DefaultPrice: i.DefaultPrice,
	}
}

// ToMasterTermResponse converts a domain master term
func ToMasterTermResponse(term *catalog.MasterTerm) MasterTermResponse {
	return MasterTermResponse{
		ID:       term.ID,
		Category: term.Category,
		Code:     term.Code,
		Title:    term.Title,
		Content:  term.Content,
	}
}

// ToTaxRateResponse converts a domain tax rate
func ToTaxRateResponse(rate *catalog.TaxRate) TaxRateResponse {
	return TaxRateResponse{
		ID:        rate.ID,
		Country:   rate.Country,
		Name:      rate.Name,
		Rate:      rate.Rate,
		IsDefault: rate.IsDefault,
	}
}

// ToTemplateResponse converts a domain template
func ToTemplateResponse(tpl *catalog.Template) TemplateResponse {
	return TemplateResponse{
		ID:        tpl.ID,
		Kind:      string(tpl.Kind),
		Code:      tpl.Code,
		Name:      tpl.Name,
		IsPremium: tpl.IsPremium,
	}
}
