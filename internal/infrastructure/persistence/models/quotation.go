package models

import (
	"time"

	"github.com/billing/backend/internal/domain/quotation"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationModel is the persistence model for the Quotation aggregate.
type QuotationModel struct {
	OwnedAggregateModel
	Number           string           `gorm:"type:varchar(20);not null;index"`
	CompanyProfileID uuid.UUID        `gorm:"type:uuid;not null;index"`
	ClientID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	Country          string           `gorm:"type:varchar(2);not null"`
	Currency         string           `gorm:"type:varchar(3);not null"`
	Discount         decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate          decimal.Decimal  `gorm:"type:decimal(8,4);not null;default:0"`
	Subtotal         decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Tax              decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status           quotation.Status `gorm:"type:varchar(20);not null;default:'draft';index"`
	Note             string           `gorm:"type:text"`
	ValidUntil       *time.Time
	SentAt           *time.Time
	AcceptedAt       *time.Time
	ConvertedInvoice *uuid.UUID           `gorm:"type:uuid"`
	Items            []QuotationItemModel `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// QuotationItemModel is the persistence model for a quotation line. The
// optional master item link feeds the usage ledger.
type QuotationItemModel struct {
	BaseModel
	QuotationID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MasterItemID    *uuid.UUID      `gorm:"type:uuid;index"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (QuotationItemModel) TableName() string {
	return "quotation_items"
}

// ToDomain converts the persistence model to a domain Quotation aggregate.
func (m *QuotationModel) ToDomain() *quotation.Quotation {
	items := make([]quotation.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = quotation.Item{
			ID:              item.ID,
			QuotationID:     item.QuotationID,
			MasterItemID:    item.MasterItemID,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Amount:          item.Amount,
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.UpdatedAt,
		}
	}
	return &quotation.Quotation{
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
		ValidUntil:         m.ValidUntil,
		SentAt:             m.SentAt,
		AcceptedAt:         m.AcceptedAt,
		ConvertedInvoice:   m.ConvertedInvoice,
	}
}

// FromDomain populates the persistence model from a domain Quotation.
func (m *QuotationModel) FromDomain(q *quotation.Quotation) {
	m.FromDomainOwnedAggregateRoot(q.OwnedAggregateRoot)
	m.Number = q.Number
	m.CompanyProfileID = q.CompanyProfileID
	m.ClientID = q.ClientID
	m.Country = q.Country
	m.Currency = string(q.Currency)
	m.Discount = q.Discount
	m.TaxRate = q.TaxRate
	m.Subtotal = q.Subtotal
	m.Tax = q.Tax
	m.Total = q.Total
	m.Status = q.Status
	m.Note = q.Note
	m.ValidUntil = q.ValidUntil
	m.SentAt = q.SentAt
	m.AcceptedAt = q.AcceptedAt
	m.ConvertedInvoice = q.ConvertedInvoice

	m.Items = make([]QuotationItemModel, len(q.Items))
	for i, item := range q.Items {
		m.Items[i] = QuotationItemModel{
			BaseModel: BaseModel{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			QuotationID:     q.ID,
			MasterItemID:    item.MasterItemID,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Amount:          item.Amount,
		}
	}
}
