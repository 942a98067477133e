package models

import (
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionPlanModel is the persistence model for subscription plans
type SubscriptionPlanModel struct {
	AggregateModel
	PlanID           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Price            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	InvoiceQuota     int             `gorm:"not null"`
	QuoteQuota       int             `gorm:"not null"`
	PremiumTemplates bool            `gorm:"not null;default:false"`
	IsActive         bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SubscriptionPlanModel) TableName() string {
	return "subscription_plans"
}

// ToDomain converts the persistence model to a domain SubscriptionPlan.
func (m *SubscriptionPlanModel) ToDomain() *billing.SubscriptionPlan {
	return &billing.SubscriptionPlan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PlanID:            m.PlanID,
		Name:              m.Name,
		Price:             m.Price,
		InvoiceQuota:      m.InvoiceQuota,
		QuoteQuota:        m.QuoteQuota,
		PremiumTemplates:  m.PremiumTemplates,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain SubscriptionPlan.
func (m *SubscriptionPlanModel) FromDomain(plan *billing.SubscriptionPlan) {
	m.FromDomainAggregateRoot(plan.BaseAggregateRoot)
	m.PlanID = plan.PlanID
	m.Name = plan.Name
	m.Price = plan.Price
	m.InvoiceQuota = plan.InvoiceQuota
	m.QuoteQuota = plan.QuoteQuota
	m.PremiumTemplates = plan.PremiumTemplates
	m.IsActive = plan.IsActive
}

// MaterialUsageModel is the persistence model for usage ledger records.
// The table is append-only.
type MaterialUsageModel struct {
	BaseModel
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	MasterItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	QuotationID  *uuid.UUID `gorm:"type:uuid;index"`
	InvoiceID    *uuid.UUID `gorm:"type:uuid;index"`
	UsedAt       time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (MaterialUsageModel) TableName() string {
	return "material_usages"
}

// ToDomain converts the persistence model to a domain MaterialUsage.
func (m *MaterialUsageModel) ToDomain() *billing.MaterialUsage {
	return &billing.MaterialUsage{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserID:       m.UserID,
		MasterItemID: m.MasterItemID,
		QuotationID:  m.QuotationID,
		InvoiceID:    m.InvoiceID,
		UsedAt:       m.UsedAt,
	}
}

// FromDomain populates the persistence model from a domain MaterialUsage.
func (m *MaterialUsageModel) FromDomain(usage *billing.MaterialUsage) {
	m.FromDomainBaseEntity(usage.BaseEntity)
	m.UserID = usage.UserID
	m.MasterItemID = usage.MasterItemID
	m.QuotationID = usage.QuotationID
	m.InvoiceID = usage.InvoiceID
	m.UsedAt = usage.UsedAt
}
