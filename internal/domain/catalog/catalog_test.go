package catalog

import (
	"testing"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMasterItem(t *testing.T) {
	t.Run("normalizes code to upper case", func(t *testing.T) {
		item, err := NewMasterItem("materials", " cbl-cat6 ", "Cat6 cable", "m", decimal.NewFromFloat(1.20))
		require.NoError(t, err)
		assert.Equal(t, "CBL-CAT6", item.Code)
		assert.True(t, item.IsActive)
	})

	t.Run("rejects negative default price", func(t *testing.T) {
		_, err := NewMasterItem("materials", "CBL", "Cable", "m", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewMasterItem("materials", "  ", "Cable", "m", decimal.Zero)
		assert.Error(t, err)
	})
}

func TestCompanyItemApply(t *testing.T) {
	userID := uuid.New()

	newItem := func(t *testing.T) *CompanyItem {
		item, err := NewCompanyItem(userID, nil, "services", "Installation", "h", decimal.NewFromInt(85))
		require.NoError(t, err)
		return item
	}

	t.Run("updates provided fields only", func(t *testing.T) {
		item := newItem(t)
		price := decimal.NewFromInt(95)
		err := item.Apply(CompanyItemPatch{Price: &price})
		require.NoError(t, err)
		assert.True(t, item.Price.Equal(price))
		assert.Equal(t, "Installation", item.Name)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		item := newItem(t)
		price := decimal.NewFromInt(-5)
		err := item.Apply(CompanyItemPatch{Price: &price})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects blank name", func(t *testing.T) {
		item := newItem(t)
		name := "   "
		err := item.Apply(CompanyItemPatch{Name: &name})
		assert.Error(t, err)
	})
}

func TestCompanyTermDefaultFlag(t *testing.T) {
	userID := uuid.New()
	term, err := NewCompanyTerm(userID, nil, "payment", "Net 30", "Payment due within 30 days.")
	require.NoError(t, err)
	assert.False(t, term.IsDefault, "new terms start non-default; promotion is the manager's call")

	term.MarkDefault()
	assert.True(t, term.IsDefault)

	term.ClearDefault()
	assert.False(t, term.IsDefault)
}

func TestNewTaxRate(t *testing.T) {
	t.Run("normalizes country code", func(t *testing.T) {
		rate, err := NewTaxRate(" de ", "VAT 19%", decimal.NewFromInt(19), true)
		require.NoError(t, err)
		assert.Equal(t, "DE", rate.Country)
	})

	t.Run("rejects non ISO country", func(t *testing.T) {
		_, err := NewTaxRate("DEU", "VAT", decimal.NewFromInt(19), false)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects rate above 100", func(t *testing.T) {
		_, err := NewTaxRate("DE", "VAT", decimal.NewFromInt(101), false)
		assert.Error(t, err)
	})

	t.Run("allows zero rate", func(t *testing.T) {
		rate, err := NewTaxRate("AE", "No VAT", decimal.Zero, true)
		require.NoError(t, err)
		assert.True(t, rate.Rate.IsZero())
	})
}

func TestNewTemplate(t *testing.T) {
	t.Run("normalizes code to lower case", func(t *testing.T) {
		tpl, err := NewTemplate(TemplateKindInvoice, " Classic ", "Classic", false)
		require.NoError(t, err)
		assert.Equal(t, "classic", tpl.Code)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewTemplate(TemplateKind("receipt"), "classic", "Classic", false)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}
