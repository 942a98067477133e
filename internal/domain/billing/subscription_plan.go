package billing

import (
	"strings"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SubscriptionPlan is reference data describing what a plan grants: document
// quotas and premium template access. Quotas of identity.UnlimitedQuota
// mean no counting at all.
type SubscriptionPlan struct {
	shared.BaseAggregateRoot
	PlanID           string // natural key: free, per-invoice, unlimited
	Name             string
	Price            decimal.Decimal
	InvoiceQuota     int
	QuoteQuota       int
	PremiumTemplates bool
	IsActive         bool
}

// NewSubscriptionPlan creates a new plan row
func NewSubscriptionPlan(planID, name string, price decimal.Decimal, invoiceQuota, quoteQuota int, premiumTemplates bool) (*SubscriptionPlan, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, shared.NewValidationError("Plan ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Price cannot be negative")
	}
	if invoiceQuota < identity.UnlimitedQuota || quoteQuota < identity.UnlimitedQuota {
		return nil, shared.NewValidationError("Quota must be non-negative or unlimited")
	}

	return &SubscriptionPlan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PlanID:            planID,
		Name:              strings.TrimSpace(name),
		Price:             price,
		InvoiceQuota:      invoiceQuota,
		QuoteQuota:        quoteQuota,
		PremiumTemplates:  premiumTemplates,
		IsActive:          true,
	}, nil
}
