package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/quotation"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupQuotationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.QuotationModel{},
		&models.QuotationItemModel{},
		&models.MaterialUsageModel{},
		&models.NumberSequenceModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestQuotation(t *testing.T, userID uuid.UUID, number string) *quotation.Quotation {
	q, err := quotation.NewQuotation(userID, number, uuid.New(), uuid.New(), "SI", valueobject.EUR)
	require.NoError(t, err)
	return q
}

func TestQuotationRepository_DeleteKeepsUsageHistory(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewGormQuotationRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	q := newTestQuotation(t, userID, "QUO-2026-0001")
	masterID := uuid.New()
	_, err := q.AddItem("Catalog paint", decimal.NewFromInt(1), decimal.NewFromInt(20), decimal.Zero, &masterID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, q))

	// The ledger row a catalog-linked item leaves behind.
	quotationID := q.ID
	usage := models.MaterialUsageModel{
		UserID:       userID,
		MasterItemID: masterID,
		QuotationID:  &quotationID,
		UsedAt:       time.Now(),
	}
	usage.ID = uuid.New()
	require.NoError(t, db.Create(&usage).Error)

	require.NoError(t, repo.Delete(ctx, q.ID))

	_, err = repo.FindByID(ctx, q.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemRows int64
	require.NoError(t, db.Model(&models.QuotationItemModel{}).Count(&itemRows).Error)
	assert.Equal(t, int64(0), itemRows)

	var kept models.MaterialUsageModel
	require.NoError(t, db.First(&kept, "id = ?", usage.ID).Error)
	assert.Nil(t, kept.QuotationID, "usage history must survive with the back-reference nulled")
	assert.Equal(t, masterID, kept.MasterItemID)
}

func TestQuotationRepository_SaveAggregate(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewGormQuotationRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	q := newTestQuotation(t, userID, "QUO-2026-0002")
	_, err := q.AddItem("Scaffolding", decimal.NewFromInt(2), decimal.NewFromInt(10), decimal.Zero, nil)
	require.NoError(t, err)
	item, err := q.AddItem("Paint", decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.NewFromInt(10), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, q))

	found, err := repo.FindByIDForUser(ctx, userID, q.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.True(t, found.Subtotal.Equal(decimal.RequireFromString("24.5")), "subtotal %s", found.Subtotal)

	require.NoError(t, q.RemoveItem(item.ID))
	require.NoError(t, repo.Save(ctx, q))

	var rows int64
	require.NoError(t, db.Model(&models.QuotationItemModel{}).
		Where("quotation_id = ?", q.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}
