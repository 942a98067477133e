package persistence

import (
	"context"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMaterialUsageRepository implements MaterialUsageRepository using GORM.
// The table is append-only: rows are inserted when a curated item lands on a
// document and never updated or deleted afterwards.
type GormMaterialUsageRepository struct {
	db *gorm.DB
}

// NewGormMaterialUsageRepository creates a new GormMaterialUsageRepository
func NewGormMaterialUsageRepository(db *gorm.DB) *GormMaterialUsageRepository {
	return &GormMaterialUsageRepository{db: db}
}

// FindAllForUser lists the user's usage records, newest first
func (r *GormMaterialUsageRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]billing.MaterialUsage, error) {
	query := r.db.WithContext(ctx).Model(&models.MaterialUsageModel{}).
		Where("user_id = ?", userID)
	if masterItemID, ok := filter.Filters["master_item_id"]; ok {
		query = query.Where("master_item_id = ?", masterItemID)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("used_at DESC")

	var usageModels []models.MaterialUsageModel
	if err := query.Find(&usageModels).Error; err != nil {
		return nil, err
	}
	usages := make([]billing.MaterialUsage, len(usageModels))
	for i, model := range usageModels {
		usages[i] = *model.ToDomain()
	}
	return usages, nil
}

// CountForUser counts the user's usage records
func (r *GormMaterialUsageRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaterialUsageModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Save inserts a usage record
func (r *GormMaterialUsageRepository) Save(ctx context.Context, usage *billing.MaterialUsage) error {
	var model models.MaterialUsageModel
	model.FromDomain(usage)
	return r.db.WithContext(ctx).Create(&model).Error
}

var _ billing.MaterialUsageRepository = (*GormMaterialUsageRepository)(nil)
