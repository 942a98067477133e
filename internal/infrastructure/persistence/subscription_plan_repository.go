package persistence

import (
	"context"
	"errors"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionPlanRepository implements SubscriptionPlanRepository using GORM
type GormSubscriptionPlanRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionPlanRepository creates a new GormSubscriptionPlanRepository
func NewGormSubscriptionPlanRepository(db *gorm.DB) *GormSubscriptionPlanRepository {
	return &GormSubscriptionPlanRepository{db: db}
}

// FindByID finds a plan by its row ID
func (r *GormSubscriptionPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPlan, error) {
	var model models.SubscriptionPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPlanID finds a plan by its stable plan identifier
func (r *GormSubscriptionPlanRepository) FindByPlanID(ctx context.Context, planID string) (*billing.SubscriptionPlan, error) {
	var model models.SubscriptionPlanModel
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive lists plans offered for subscription
func (r *GormSubscriptionPlanRepository) FindAllActive(ctx context.Context) ([]billing.SubscriptionPlan, error) {
	var planModels []models.SubscriptionPlanModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&planModels).Error; err != nil {
		return nil, err
	}
	plans := make([]billing.SubscriptionPlan, len(planModels))
	for i, model := range planModels {
		plans[i] = *model.ToDomain()
	}
	return plans, nil
}

// ExistsByPlanID checks whether a plan identifier is taken
func (r *GormSubscriptionPlanRepository) ExistsByPlanID(ctx context.Context, planID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SubscriptionPlanModel{}).
		Where("plan_id = ?", planID).
		Count(&count).Error
	return count > 0, err
}

// Save persists a plan
func (r *GormSubscriptionPlanRepository) Save(ctx context.Context, plan *billing.SubscriptionPlan) error {
	var model models.SubscriptionPlanModel
	model.FromDomain(plan)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

var _ billing.SubscriptionPlanRepository = (*GormSubscriptionPlanRepository)(nil)
