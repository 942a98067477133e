package catalog

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxRate is reference data: the tax percentage applied to documents issued
// for a country. The default row per country is the one the total
// calculator resolves; countries without one are taxed at zero.
type TaxRate struct {
	shared.BaseAggregateRoot
	Country   string // 2-letter ISO code
	Name      string // e.g. "VAT 19%"
	Rate      decimal.Decimal
	IsDefault bool
}

// NewTaxRate creates a new tax rate row
func NewTaxRate(country, name string, rate decimal.Decimal, isDefault bool) (*TaxRate, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return nil, shared.NewValidationError("Country must be a 2-letter ISO code")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewValidationError("Rate must be between 0 and 100")
	}

	return &TaxRate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Country:           country,
		Name:              strings.TrimSpace(name),
		Rate:              rate,
		IsDefault:         isDefault,
	}, nil
}
