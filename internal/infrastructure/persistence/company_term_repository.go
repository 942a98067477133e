package persistence

import (
	"context"
	"errors"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCompanyTermRepository implements CompanyTermRepository using GORM
type GormCompanyTermRepository struct {
	db *gorm.DB
}

// NewGormCompanyTermRepository creates a new GormCompanyTermRepository
func NewGormCompanyTermRepository(db *gorm.DB) *GormCompanyTermRepository {
	return &GormCompanyTermRepository{db: db}
}

// FindByID finds a company term by its ID
func (r *GormCompanyTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CompanyTerm, error) {
	var model models.CompanyTermModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds a company term by ID owned by the user
func (r *GormCompanyTermRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.CompanyTerm, error) {
	var model models.CompanyTermModel
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

// FindAllForUser lists the user's company terms with filtering
func (r *GormCompanyTermRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.CompanyTerm, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyTermModel{}).
		Where("user_id = ?", userID)
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, NamedSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var termModels []models.CompanyTermModel
	if err := query.Find(&termModels).Error; err != nil {
		return nil, err
	}
	terms := make([]catalog.CompanyTerm, len(termModels))
	for i, model := range termModels {
		terms[i] = *model.ToDomain()
	}
	return terms, nil
}

// FindByUserAndCategoryForUpdate loads the whole (user, category) scope
// under row-level write locks so default-flag changes serialize.
func (r *GormCompanyTermRepository) FindByUserAndCategoryForUpdate(ctx context.Context, userID uuid.UUID, category string) ([]catalog.CompanyTerm, error) {
	var termModels []models.CompanyTermModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND category = ?", userID, category).
		Order("created_at ASC").
		Find(&termModels).Error; err != nil {
		return nil, err
	}

	terms := make([]catalog.CompanyTerm, len(termModels))
	for i, model := range termModels {
		terms[i] = *model.ToDomain()
	}
	return terms, nil
}

// Save persists a company term
func (r *GormCompanyTermRepository) Save(ctx context.Context, term *catalog.CompanyTerm) error {
	var model models.CompanyTermModel
	model.FromDomain(term)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveAll persists multiple company terms in one statement
func (r *GormCompanyTermRepository) SaveAll(ctx context.Context, terms []*catalog.CompanyTerm) error {
	if len(terms) == 0 {
		return nil
	}
	termModels := make([]models.CompanyTermModel, len(terms))
	for i, term := range terms {
		termModels[i].FromDomain(term)
	}
	return r.db.WithContext(ctx).Save(&termModels).Error
}

// Delete removes a company term
func (r *GormCompanyTermRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CompanyTermModel{}, "id = ?", id).Error
}

var _ catalog.CompanyTermRepository = (*GormCompanyTermRepository)(nil)
