package models

import (
	"time"

	"github.com/billing/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity. The
// quota counters live on this row so check-then-increment sequences can
// lock one row.
type UserModel struct {
	AggregateModel
	Email                 string                      `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash          string                      `gorm:"type:varchar(100);not null"`
	Name                  string                      `gorm:"type:varchar(200);not null"`
	PlanID                string                      `gorm:"type:varchar(50);not null"`
	InvoiceQuota          int                         `gorm:"not null;default:0"`
	InvoicesUsed          int                         `gorm:"not null;default:0"`
	QuoteQuota            int                         `gorm:"not null;default:0"`
	QuotesUsed            int                         `gorm:"not null;default:0"`
	MaterialRecordsUsed   int                         `gorm:"not null;default:0"`
	SubscriptionStatus    identity.SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'"`
	SubscriptionExpiresAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot:     m.ToDomainAggregateRoot(),
		Email:                 m.Email,
		PasswordHash:          m.PasswordHash,
		Name:                  m.Name,
		PlanID:                m.PlanID,
		InvoiceQuota:          m.InvoiceQuota,
		InvoicesUsed:          m.InvoicesUsed,
		QuoteQuota:            m.QuoteQuota,
		QuotesUsed:            m.QuotesUsed,
		MaterialRecordsUsed:   m.MaterialRecordsUsed,
		SubscriptionStatus:    m.SubscriptionStatus,
		SubscriptionExpiresAt: m.SubscriptionExpiresAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Name = u.Name
	m.PlanID = u.PlanID
	m.InvoiceQuota = u.InvoiceQuota
	m.InvoicesUsed = u.InvoicesUsed
	m.QuoteQuota = u.QuoteQuota
	m.QuotesUsed = u.QuotesUsed
	m.MaterialRecordsUsed = u.MaterialRecordsUsed
	m.SubscriptionStatus = u.SubscriptionStatus
	m.SubscriptionExpiresAt = u.SubscriptionExpiresAt
}
