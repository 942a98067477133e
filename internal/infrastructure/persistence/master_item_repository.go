package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMasterItemRepository implements MasterItemRepository using GORM
type GormMasterItemRepository struct {
	db *gorm.DB
}

// NewGormMasterItemRepository creates a new GormMasterItemRepository
func NewGormMasterItemRepository(db *gorm.DB) *GormMasterItemRepository {
	return &GormMasterItemRepository{db: db}
}

// FindByID finds a master item by its ID
func (r *GormMasterItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterItem, error) {
	var model models.MasterItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a master item by its curated code
func (r *GormMasterItemRepository) FindByCode(ctx context.Context, code string) (*catalog.MasterItem, error) {
	var model models.MasterItemModel
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

// FindByCategory lists master items in a category
func (r *GormMasterItemRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.MasterItem, error) {
	return r.findAll(
		r.db.WithContext(ctx).Model(&models.MasterItemModel{}).Where("category = ?", category),
		filter,
	)
}

// FindAll lists all master items
func (r *GormMasterItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.MasterItem, error) {
	return r.findAll(r.db.WithContext(ctx).Model(&models.MasterItemModel{}), filter)
}

// ExistsByCode checks whether a curated code is taken
func (r *GormMasterItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MasterItemModel{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// Save persists a master item
func (r *GormMasterItemRepository) Save(ctx context.Context, item *catalog.MasterItem) error {
	var model models.MasterItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *GormMasterItemRepository) findAll(query *gorm.DB, filter shared.Filter) ([]catalog.MasterItem, error) {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, NamedSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var itemModels []models.MasterItemModel
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.MasterItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

var _ catalog.MasterItemRepository = (*GormMasterItemRepository)(nil)
