package models

import (
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate. Items
// and totals are persisted together; the stored totals are the derived
// values the domain recomputed on the last item write.
type InvoiceModel struct {
	OwnedAggregateModel
	Number           string                  `gorm:"type:varchar(20);not null;index"`
	CompanyProfileID uuid.UUID               `gorm:"type:uuid;not null;index"`
	ClientID         uuid.UUID               `gorm:"type:uuid;not null;index"`
	Country          string                  `gorm:"type:varchar(2);not null"`
	Currency         string                  `gorm:"type:varchar(3);not null"`
	Discount         decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate          decimal.Decimal         `gorm:"type:decimal(8,4);not null;default:0"`
	Subtotal         decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Tax              decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Status           invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Note             string                  `gorm:"type:text"`
	SentAt           *time.Time
	PaidAt           *time.Time
	CancelledAt      *time.Time
	Items            []InvoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for an invoice line
type InvoiceItemModel struct {
	BaseModel
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain Invoice aggregate.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	items := make([]invoicing.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = invoicing.Item{
			ID:              item.ID,
			InvoiceID:       item.InvoiceID,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Amount:          item.Amount,
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.UpdatedAt,
		}
	}
	return &invoicing.Invoice{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Number:             m.Number,
		CompanyProfileID:   m.CompanyProfileID,
		ClientID:           m.ClientID,
		Country:            m.Country,
		Currency:           valueobject.Currency(m.Currency),
		Discount:           m.Discount,
		TaxRate:            m.TaxRate,
		Subtotal:           m.Subtotal,
		Tax:                m.Tax,
		Total:              m.Total,
		Status:             m.Status,
		Items:              items,
		Note:               m.Note,
		SentAt:             m.SentAt,
		PaidAt:             m.PaidAt,
		CancelledAt:        m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice.
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainOwnedAggregateRoot(inv.OwnedAggregateRoot)
	m.Number = inv.Number
	m.CompanyProfileID = inv.CompanyProfileID
	m.ClientID = inv.ClientID
	m.Country = inv.Country
	m.Currency = string(inv.Currency)
	m.Discount = inv.Discount
	m.TaxRate = inv.TaxRate
	m.Subtotal = inv.Subtotal
	m.Tax = inv.Tax
	m.Total = inv.Total
	m.Status = inv.Status
	m.Note = inv.Note
	m.SentAt = inv.SentAt
	m.PaidAt = inv.PaidAt
	m.CancelledAt = inv.CancelledAt

	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModel{
			BaseModel: BaseModel{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			InvoiceID:       inv.ID,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Amount:          item.Amount,
		}
	}
}
