package catalog

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MasterItem is a curated catalog entry (material or service) shared across
// all users. Master records are not user-owned; they are managed by the
// seed step and back-office tooling and are read-only to regular callers.
type MasterItem struct {
	shared.BaseAggregateRoot
	Category     string
	Code         string // natural key, unique
	Name         string
	Unit         string
	DefaultPrice decimal.Decimal
	IsActive     bool
}

// NewMasterItem creates a new curated catalog item
func NewMasterItem(category, code, name, unit string, defaultPrice decimal.Decimal) (*MasterItem, error) {
	category = strings.TrimSpace(category)
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if category == "" {
		return nil, shared.NewValidationError("Category cannot be empty")
	}
	if code == "" {
		return nil, shared.NewValidationError("Code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}
	if defaultPrice.IsNegative() {
		return nil, shared.NewValidationError("Default price cannot be negative")
	}

	return &MasterItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
		Code:              code,
		Name:              name,
		Unit:              unit,
		DefaultPrice:      defaultPrice,
		IsActive:          true,
	}, nil
}
