package catalog

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyItem is a user-owned catalog entry, optionally derived from a
// MasterItem. The back-reference is an association only: deleting the
// master never cascades here, and the company copy evolves independently.
type CompanyItem struct {
	shared.OwnedAggregateRoot
	MasterItemID *uuid.UUID
	Category     string
	Name         string
	Unit         string
	Price        decimal.Decimal
}

// NewCompanyItem creates a new user-owned catalog item
func NewCompanyItem(userID uuid.UUID, masterItemID *uuid.UUID, category, name, unit string, price decimal.Decimal) (*CompanyItem, error) {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if category == "" {
		return nil, shared.NewValidationError("Category cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Price cannot be negative")
	}

	return &CompanyItem{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		MasterItemID:       masterItemID,
		Category:           category,
		Name:               name,
		Unit:               unit,
		Price:              price,
	}, nil
}

// CompanyItemPatch enumerates the updatable fields; nil means "leave as is"
type CompanyItemPatch struct {
	Category *string
	Name     *string
	Unit     *string
	Price    *decimal.Decimal
}

// Apply merges the patch onto the item
func (i *CompanyItem) Apply(patch CompanyItemPatch) error {
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return shared.NewValidationError("Category cannot be empty")
		}
		i.Category = category
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return shared.NewValidationError("Name cannot be empty")
		}
		i.Name = name
	}
	if patch.Unit != nil {
		i.Unit = *patch.Unit
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return shared.NewValidationError("Price cannot be negative")
		}
		i.Price = *patch.Price
	}
	i.Touch()
	return nil
}
