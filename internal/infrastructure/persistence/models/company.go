package models

import (
	"github.com/billing/backend/internal/domain/company"
)

// CompanyProfileModel is the persistence model for the company Profile
// domain entity.
type CompanyProfileModel struct {
	OwnedAggregateModel
	Name       string `gorm:"type:varchar(200);not null"`
	IsDefault  bool   `gorm:"not null;default:false;index"`
	Street     string `gorm:"type:varchar(200)"`
	City       string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20)"`
	Country    string `gorm:"type:varchar(2);not null"`
	TaxNumber  string `gorm:"type:varchar(50)"`
	BankName   string `gorm:"type:varchar(200)"`
	IBAN       string `gorm:"type:varchar(50)"`
	BIC        string `gorm:"type:varchar(20)"`
	Email      string `gorm:"type:varchar(200)"`
	Phone      string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (CompanyProfileModel) TableName() string {
	return "company_profiles"
}

// ToDomain converts the persistence model to a domain Profile entity.
func (m *CompanyProfileModel) ToDomain() *company.Profile {
	return &company.Profile{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		IsDefault:          m.IsDefault,
		Street:             m.Street,
		City:               m.City,
		PostalCode:         m.PostalCode,
		Country:            m.Country,
		TaxNumber:          m.TaxNumber,
		BankName:           m.BankName,
		IBAN:               m.IBAN,
		BIC:                m.BIC,
		Email:              m.Email,
		Phone:              m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Profile entity.
func (m *CompanyProfileModel) FromDomain(p *company.Profile) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.Name = p.Name
	m.IsDefault = p.IsDefault
	m.Street = p.Street
	m.City = p.City
	m.PostalCode = p.PostalCode
	m.Country = p.Country
	m.TaxNumber = p.TaxNumber
	m.IBAN = p.IBAN
	m.BIC = p.BIC
	m.BankName = p.BankName
	m.Email = p.Email
	m.Phone = p.Phone
}
