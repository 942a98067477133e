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

// GormCompanyItemRepository implements CompanyItemRepository using GORM
type GormCompanyItemRepository struct {
	db *gorm.DB
}

// NewGormCompanyItemRepository creates a new GormCompanyItemRepository
func NewGormCompanyItemRepository(db *gorm.DB) *GormCompanyItemRepository {
	return &GormCompanyItemRepository{db: db}
}

// FindByID finds a company item by its ID
func (r *GormCompanyItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CompanyItem, error) {
	var model models.CompanyItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds a company item by ID owned by the user
func (r *GormCompanyItemRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.CompanyItem, error) {
	var model models.CompanyItemModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's company items with filtering
func (r *GormCompanyItemRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.CompanyItem, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyItemModel{}).
		Where("user_id = ?", userID)
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, NamedSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var itemModels []models.CompanyItemModel
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.CompanyItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save persists a company item
func (r *GormCompanyItemRepository) Save(ctx context.Context, item *catalog.CompanyItem) error {
	var model models.CompanyItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a company item
func (r *GormCompanyItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CompanyItemModel{}, "id = ?", id).Error
}

var _ catalog.CompanyItemRepository = (*GormCompanyItemRepository)(nil)
