package billing

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubscriptionPlanRepository defines persistence operations for plans
type SubscriptionPlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionPlan, error)
	FindByPlanID(ctx context.Context, planID string) (*SubscriptionPlan, error)
	FindAllActive(ctx context.Context) ([]SubscriptionPlan, error)
	ExistsByPlanID(ctx context.Context, planID string) (bool, error)
	Save(ctx context.Context, plan *SubscriptionPlan) error
}

// MaterialUsageRepository defines persistence operations for usage records.
// There is no update or delete: the table is append-only.
type MaterialUsageRepository interface {
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]MaterialUsage, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, usage *MaterialUsage) error
}
