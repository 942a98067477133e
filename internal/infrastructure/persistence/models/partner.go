package models

import (
	"github.com/billing/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client domain entity.
// Central-repository clients carry a nil-less UserID of their seeding
// user but are flagged read-only through IsFromCentralRepo.
type ClientModel struct {
	OwnedAggregateModel
	Name              string `gorm:"type:varchar(200);not null"`
	IsFromCentralRepo bool   `gorm:"not null;default:false;index"`
	Street            string `gorm:"type:varchar(200)"`
	City              string `gorm:"type:varchar(100)"`
	PostalCode        string `gorm:"type:varchar(20)"`
	Country           string `gorm:"type:varchar(2);not null"`
	TaxNumber         string `gorm:"type:varchar(50)"`
	Email             string `gorm:"type:varchar(200)"`
	Phone             string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		IsFromCentralRepo:  m.IsFromCentralRepo,
		Street:             m.Street,
		City:               m.City,
		PostalCode:         m.PostalCode,
		Country:            m.Country,
		TaxNumber:          m.TaxNumber,
		Email:              m.Email,
		Phone:              m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainOwnedAggregateRoot(c.OwnedAggregateRoot)
	m.Name = c.Name
	m.IsFromCentralRepo = c.IsFromCentralRepo
	m.Street = c.Street
	m.City = c.City
	m.PostalCode = c.PostalCode
	m.Country = c.Country
	m.TaxNumber = c.TaxNumber
	m.Email = c.Email
	m.Phone = c.Phone
}
