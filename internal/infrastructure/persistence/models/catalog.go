package models

import (
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MasterItemModel is the persistence model for curated catalog items
type MasterItemModel struct {
	AggregateModel
	Category     string          `gorm:"type:varchar(100);not null;index"`
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (MasterItemModel) TableName() string {
	return "master_items"
}

// ToDomain converts the persistence model to a domain MasterItem.
func (m *MasterItemModel) ToDomain() *catalog.MasterItem {
	return &catalog.MasterItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Category:          m.Category,
		Code:              m.Code,
		Name:              m.Name,
		Unit:              m.Unit,
		DefaultPrice:      m.DefaultPrice,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain MasterItem.
func (m *MasterItemModel) FromDomain(item *catalog.MasterItem) {
	m.FromDomainAggregateRoot(item.BaseAggregateRoot)
	m.Category = item.Category
	m.Code = item.Code
	m.Name = item.Name
	m.Unit = item.Unit
	m.DefaultPrice = item.DefaultPrice
	m.IsActive = item.IsActive
}

// MasterTermModel is the persistence model for curated terms
type MasterTermModel struct {
	AggregateModel
	Category string `gorm:"type:varchar(100);not null;index"`
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Title    string `gorm:"type:varchar(200);not null"`
	Content  string `gorm:"type:text;not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MasterTermModel) TableName() string {
	return "master_terms"
}

// ToDomain converts the persistence model to a domain MasterTerm.
func (m *MasterTermModel) ToDomain() *catalog.MasterTerm {
	return &catalog.MasterTerm{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Category:          m.Category,
		Code:              m.Code,
		Title:             m.Title,
		Content:           m.Content,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain MasterTerm.
func (m *MasterTermModel) FromDomain(term *catalog.MasterTerm) {
	m.FromDomainAggregateRoot(term.BaseAggregateRoot)
	m.Category = term.Category
	m.Code = term.Code
	m.Title = term.Title
	m.Content = term.Content
	m.IsActive = term.IsActive
}

// CompanyItemModel is the persistence model for user-owned catalog items
type CompanyItemModel struct {
	OwnedAggregateModel
	MasterItemID *uuid.UUID      `gorm:"type:uuid;index"`
	Category     string          `gorm:"type:varchar(100);not null;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CompanyItemModel) TableName() string {
	return "company_items"
}

// ToDomain converts the persistence model to a domain CompanyItem.
func (m *CompanyItemModel) ToDomain() *catalog.CompanyItem {
	return &catalog.CompanyItem{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		MasterItemID:       m.MasterItemID,
		Category:           m.Category,
		Name:               m.Name,
		Unit:               m.Unit,
		Price:              m.Price,
	}
}

// FromDomain populates the persistence model from a domain CompanyItem.
func (m *CompanyItemModel) FromDomain(item *catalog.CompanyItem) {
	m.FromDomainOwnedAggregateRoot(item.OwnedAggregateRoot)
	m.MasterItemID = item.MasterItemID
	m.Category = item.Category
	m.Name = item.Name
	m.Unit = item.Unit
	m.Price = item.Price
}

// CompanyTermModel is the persistence model for user-owned terms. The
// (user, category) scope carries the per-category default invariant.
type CompanyTermModel struct {
	OwnedAggregateModel
	MasterTermID *uuid.UUID `gorm:"type:uuid;index"`
	Category     string     `gorm:"type:varchar(100);not null;index"`
	Title        string     `gorm:"type:varchar(200);not null"`
	Content      string     `gorm:"type:text;not null"`
	IsDefault    bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CompanyTermModel) TableName() string {
	return "company_terms"
}

// ToDomain converts the persistence model to a domain CompanyTerm.
func (m *CompanyTermModel) ToDomain() *catalog.CompanyTerm {
	return &catalog.CompanyTerm{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		MasterTermID:       m.MasterTermID,
		Category:           m.Category,
		Title:              m.Title,
		Content:            m.Content,
		IsDefault:          m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain CompanyTerm.
func (m *CompanyTermModel) FromDomain(term *catalog.CompanyTerm) {
	m.FromDomainOwnedAggregateRoot(term.OwnedAggregateRoot)
	m.MasterTermID = term.MasterTermID
	m.Category = term.Category
	m.Title = term.Title
	m.Content = term.Content
	m.IsDefault = term.IsDefault
}

// TaxRateModel is the persistence model for tax rates
type TaxRateModel struct {
	AggregateModel
	Country   string          `gorm:"type:varchar(2);not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	IsDefault bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TaxRateModel) TableName() string {
	return "tax_rates"
}

// ToDomain converts the persistence model to a domain TaxRate.
func (m *TaxRateModel) ToDomain() *catalog.TaxRate {
	return &catalog.TaxRate{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Country:           m.Country,
		Name:              m.Name,
		Rate:              m.Rate,
		IsDefault:         m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain TaxRate.
func (m *TaxRateModel) FromDomain(rate *catalog.TaxRate) {
	m.FromDomainAggregateRoot(rate.BaseAggregateRoot)
	m.Country = rate.Country
	m.Name = rate.Name
	m.Rate = rate.Rate
	m.IsDefault = rate.IsDefault
}

// TemplateModel is the persistence model for document templates
type TemplateModel struct {
	AggregateModel
	Kind      catalog.TemplateKind `gorm:"type:varchar(20);not null;index"`
	Code      string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string               `gorm:"type:varchar(200);not null"`
	IsPremium bool                 `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TemplateModel) TableName() string {
	return "templates"
}

// ToDomain converts the persistence model to a domain Template.
func (m *TemplateModel) ToDomain() *catalog.Template {
	return &catalog.Template{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Kind:              m.Kind,
		Code:              m.Code,
		Name:              m.Name,
		IsPremium:         m.IsPremium,
	}
}

// FromDomain populates the persistence model from a domain Template.
func (m *TemplateModel) FromDomain(tpl *catalog.Template) {
	m.FromDomainAggregateRoot(tpl.BaseAggregateRoot)
	m.Kind = tpl.Kind
	m.Code = tpl.Code
	m.Name = tpl.Name
	m.IsPremium = tpl.IsPremium
}
