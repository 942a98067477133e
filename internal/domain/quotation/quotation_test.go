package quotation

import (
	"testing"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestQuotation(t *testing.T) *Quotation {
	t.Helper()
	q, err := NewQuotation(uuid.New(), "QUO-2026-0001", uuid.New(), uuid.New(), "DE", valueobject.EUR)
	require.NoError(t, err)
	return q
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestQuotation_Totals(t *testing.T) {
	q := createTestQuotation(t)
	_, err := q.AddItem("Scaffolding", dec("2"), dec("10.00"), dec("0"), nil)
	require.NoError(t, err)
	_, err = q.AddItem("Paint", dec("1"), dec("5.00"), dec("10"), nil)
	require.NoError(t, err)
	q.SetTaxRate(dec("20"))

	assert.Equal(t, "24.50", q.Subtotal.StringFixed(2))
	assert.Equal(t, "4.90", q.Tax.StringFixed(2))
	assert.Equal(t, "29.40", q.Total.StringFixed(2))
}

func TestQuotation_DiscountCappedWhenItemsShrink(t *testing.T) {
	q := createTestQuotation(t)
	big, err := q.AddItem("Scaffolding", dec("1"), dec("100.00"), dec("0"), nil)
	require.NoError(t, err)
	_, err = q.AddItem("Paint", dec("1"), dec("10.00"), dec("0"), nil)
	require.NoError(t, err)
	q.SetTaxRate(dec("20"))
	require.NoError(t, q.ApplyDiscount(dec("50.00")))

	require.NoError(t, q.RemoveItem(big.ID))

	assert.Equal(t, "10.00", q.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", q.Discount.StringFixed(2))
	assert.False(t, q.Tax.IsNegative())
	assert.Equal(t, "0.00", q.Total.StringFixed(2))
}

func TestQuotation_AddItem_MasterReference(t *testing.T) {
	q := createTestQuotation(t)
	masterID := uuid.New()

	item, err := q.AddItem("Catalog paint", dec("1"), dec("12.00"), dec("0"), &masterID)
	require.NoError(t, err)
	require.NotNil(t, item.MasterItemID)
	assert.Equal(t, masterID, *item.MasterItemID)

	plain, err := q.AddItem("Custom work", dec("1"), dec("40.00"), dec("0"), nil)
	require.NoError(t, err)
	assert.Nil(t, plain.MasterItemID)
}

func TestQuotation_UpdateItem(t *testing.T) {
	q := createTestQuotation(t)
	item, err := q.AddItem("Scaffolding", dec("2"), dec("10.00"), dec("0"), nil)
	require.NoError(t, err)

	price := dec("15.00")
	require.NoError(t, q.UpdateItem(item.ID, ItemPatch{UnitPrice: &price}))
	assert.Equal(t, "30.00", q.Subtotal.StringFixed(2))

	err = q.UpdateItem(uuid.New(), ItemPatch{UnitPrice: &price})
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))
}

func TestQuotation_StatusFlow(t *testing.T) {
	q := createTestQuotation(t)
	_, err := q.AddItem("Scaffolding", dec("2"), dec("10.00"), dec("0"), nil)
	require.NoError(t, err)

	require.NoError(t, q.TransitionTo(StatusSent))
	require.NoError(t, q.TransitionTo(StatusAccepted))
	assert.NotNil(t, q.AcceptedAt)

	// accepted is terminal
	err = q.TransitionTo(StatusDeclined)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
}

func TestQuotation_MarkConverted(t *testing.T) {
	q := createTestQuotation(t)
	_, err := q.AddItem("Scaffolding", dec("2"), dec("10.00"), dec("0"), nil)
	require.NoError(t, err)

	t.Run("draft cannot convert", func(t *testing.T) {
		err := q.MarkConverted(uuid.New())
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})

	require.NoError(t, q.TransitionTo(StatusSent))
	require.NoError(t, q.TransitionTo(StatusAccepted))

	t.Run("accepted converts once", func(t *testing.T) {
		invoiceID := uuid.New()
		require.NoError(t, q.MarkConverted(invoiceID))
		require.NotNil(t, q.ConvertedInvoice)
		assert.Equal(t, invoiceID, *q.ConvertedInvoice)

		err := q.MarkConverted(uuid.New())
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})
}

func TestQuotation_ItemsLockedAfterDraft(t *testing.T) {
	q := createTestQuotation(t)
	item, err := q.AddItem("Scaffolding", dec("2"), dec("10.00"), dec("0"), nil)
	require.NoError(t, err)
	require.NoError(t, q.TransitionTo(StatusSent))

	_, err = q.AddItem("More", dec("1"), dec("1.00"), dec("0"), nil)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	assert.True(t, shared.IsCode(q.RemoveItem(item.ID), shared.CodeInvalidState))
}
