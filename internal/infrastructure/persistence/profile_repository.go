package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID finds a profile by its ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Profile, error) {
	var model models.CompanyProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds a profile by ID owned by the user
func (r *GormProfileRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*company.Profile, error) {
	var model models.CompanyProfileModel
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

// FindAllForUser finds all profiles of a user
func (r *GormProfileRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]company.Profile, error) {
	var profileModels []models.CompanyProfileModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CompanyProfileModel{}).Where("user_id = ?", userID),
		filter,
	)
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]company.Profile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles, nil
}

// FindDefaultForUser finds the user's default profile
func (r *GormProfileRepository) FindDefaultForUser(ctx context.Context, userID uuid.UUID) (*company.Profile, error) {
	var model models.CompanyProfileModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUserForUpdate loads every profile row of the user under
// row-level write locks so default-flag mutations serialize.
func (r *GormProfileRepository) FindAllForUserForUpdate(ctx context.Context, userID uuid.UUID) ([]company.Profile, error) {
	var profileModels []models.CompanyProfileModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]company.Profile, len(profileModels))
	for i, model := range profileModels {
		profiles[i] = *model.ToDomain()
	}
	return profiles, nil
}

// CountForUser counts the user's profiles
func (r *GormProfileRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyProfileModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Save persists a profile
func (r *GormProfileRepository) Save(ctx context.Context, profile *company.Profile) error {
	var model models.CompanyProfileModel
	model.FromDomain(profile)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveAll persists multiple profiles in one statement
func (r *GormProfileRepository) SaveAll(ctx context.Context, profiles []*company.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	profileModels := make([]models.CompanyProfileModel, len(profiles))
	for i, profile := range profiles {
		profileModels[i].FromDomain(profile)
	}
	return r.db.WithContext(ctx).Save(&profileModels).Error
}

// Delete removes a profile
func (r *GormProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CompanyProfileModel{}, "id = ?", id).Error
}

func (r *GormProfileRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, NamedSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	return query
}

var _ company.ProfileRepository = (*GormProfileRepository)(nil)
