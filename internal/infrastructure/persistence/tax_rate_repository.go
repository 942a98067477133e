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

// GormTaxRateRepository implements TaxRateRepository using GORM
type GormTaxRateRepository struct {
	db *gorm.DB
}

// NewGormTaxRateRepository creates a new GormTaxRateRepository
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{db: db}
}

// FindByID finds a tax rate by its ID
func (r *GormTaxRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.TaxRate, error) {
	var model models.TaxRateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDefaultForCountry returns the default rate row for a country
func (r *GormTaxRateRepository) FindDefaultForCountry(ctx context.Context, country string) (*catalog.TaxRate, error) {
	var model models.TaxRateModel
	if err := r.db.WithContext(ctx).
		Where("country = ? AND is_default = ?", country, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all tax rates
func (r *GormTaxRateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.TaxRate, error) {
	query := r.db.WithContext(ctx).Model(&models.TaxRateModel{})
	if country, ok := filter.Filters["country"]; ok {
		query = query.Where("country = ?", country)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("country ASC, is_default DESC, rate ASC")

	var rateModels []models.TaxRateModel
	if err := query.Find(&rateModels).Error; err != nil {
		return nil, err
	}
	rates := make([]catalog.TaxRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, nil
}

// ExistsDefaultForCountry checks whether a country has a default rate
func (r *GormTaxRateRepository) ExistsDefaultForCountry(ctx context.Context, country string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TaxRateModel{}).
		Where("country = ? AND is_default = ?", country, true).
		Count(&count).Error
	return count > 0, err
}

// Save persists a tax rate
func (r *GormTaxRateRepository) Save(ctx context.Context, rate *catalog.TaxRate) error {
	var model models.TaxRateModel
	model.FromDomain(rate)
	return r.db.WithContext(ctx).Save(&model).Error
}

var _ catalog.TaxRateRepository = (*GormTaxRateRepository)(nil)
