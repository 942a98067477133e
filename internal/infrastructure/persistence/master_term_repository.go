package persistence

import (
	"context"
	"errors"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMasterTermRepository implements MasterTermRepository using GORM
type GormMasterTermRepository struct {
	db *gorm.DB
}

// NewGormMasterTermRepository creates a new GormMasterTermRepository
func NewGormMasterTermRepository(db *gorm.DB) *GormMasterTermRepository {
	return &GormMasterTermRepository{db: db}
}

// FindByID finds a master term by its ID
func (r *GormMasterTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterTerm, error) {
	var model models.MasterTermModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a master term by its curated code
func (r *GormMasterTermRepository) FindByCode(ctx context.Context, code string) (*catalog.MasterTerm, error) {
	var model models.MasterTermModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategory lists master terms in a category
func (r *GormMasterTermRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.MasterTerm, error) {
	query := r.db.WithContext(ctx).Model(&models.MasterTermModel{}).
		Where("category = ?", category)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var termModels []models.MasterTermModel
	if err := query.Find(&termModels).Error; err != nil {
		return nil, err
	}
	terms := make([]catalog.MasterTerm, len(termModels))
	for i, model := range termModels {
		terms[i] = *model.ToDomain()
	}
	return terms, nil
}

// ExistsByCode checks whether a curated code is taken
func (r *GormMasterTermRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MasterTermModel{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// Save persists a master term
func (r *GormMasterTermRepository) Save(ctx context.Context, term *catalog.MasterTerm) error {
	var model models.MasterTermModel
	model.FromDomain(term)
	return r.db.WithContext(ctx).Save(&model).Error
}

var _ catalog.MasterTermRepository = (*GormMasterTermRepository)(nil)
