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

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	var model models.TemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a template by its code
func (r *GormTemplateRepository) FindByCode(ctx context.Context, code string) (*catalog.Template, error) {
	var model models.TemplateModel
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

// FindByKind lists templates for a document type; premium rows are only
// included when the caller's plan allows them.
func (r *GormTemplateRepository) FindByKind(ctx context.Context, kind catalog.TemplateKind, includePremium bool) ([]catalog.Template, error) {
	query := r.db.WithContext(ctx).Model(&models.TemplateModel{}).
		Where("kind = ?", kind)
	if !includePremium {
		query = query.Where("is_premium = ?", false)
	}
	query = query.Order("is_premium ASC, code ASC")

	var templateModels []models.TemplateModel
	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}
	templates := make([]catalog.Template, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, nil
}

// ExistsByCode checks whether a template code is taken
func (r *GormTemplateRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TemplateModel{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// Save persists a template
func (r *GormTemplateRepository) Save(ctx context.Context, template *catalog.Template) error {
	var model models.TemplateModel
	model.FromDomain(template)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

var _ catalog.TemplateRepository = (*GormTemplateRepository)(nil)
