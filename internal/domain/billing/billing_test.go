package billing

import (
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscriptionPlan(t *testing.T) {
	t.Run("creates plan with counted quotas", func(t *testing.T) {
		plan, err := NewSubscriptionPlan(identity.PlanPerInvoice, "Per-Invoice Bundle", decimal.NewFromInt(29), 10, 10, true)
		require.NoError(t, err)
		assert.Equal(t, 10, plan.InvoiceQuota)
		assert.True(t, plan.IsActive)
	})

	t.Run("accepts unlimited quota sentinel", func(t *testing.T) {
		plan, err := NewSubscriptionPlan(identity.PlanUnlimited, "Unlimited", decimal.NewFromInt(99), identity.UnlimitedQuota, identity.UnlimitedQuota, true)
		require.NoError(t, err)
		assert.Equal(t, identity.UnlimitedQuota, plan.InvoiceQuota)
	})

	t.Run("rejects quota below the sentinel", func(t *testing.T) {
		_, err := NewSubscriptionPlan("custom", "Custom", decimal.Zero, -2, 0, false)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewSubscriptionPlan("custom", "Custom", decimal.NewFromInt(-1), 0, 0, false)
		assert.Error(t, err)
	})
}

func TestNewMaterialUsage(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now()

	t.Run("records usage against a quotation", func(t *testing.T) {
		quotationID := uuid.New()
		usage, err := NewMaterialUsage(userID, itemID, &quotationID, nil, now)
		require.NoError(t, err)
		assert.Equal(t, &quotationID, usage.QuotationID)
		assert.Nil(t, usage.InvoiceID)
	})

	t.Run("allows ad-hoc usage without a document", func(t *testing.T) {
		usage, err := NewMaterialUsage(userID, itemID, nil, nil, now)
		require.NoError(t, err)
		assert.Nil(t, usage.QuotationID)
	})

	t.Run("requires a master item", func(t *testing.T) {
		_, err := NewMaterialUsage(userID, uuid.Nil, nil, nil, now)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}
