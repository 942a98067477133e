package billing

import (
	"context"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlanResponse represents a subscription plan in responses
type PlanResponse struct {
	PlanID           string          `json:"plan_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	InvoiceQuota     int             `json:"invoice_quota"`
	QuoteQuota       int             `json:"quote_quota"`
	PremiumTemplates bool            `json:"premium_templates"`
}

// UsageResponse represents a user's ledger state in responses
type UsageResponse struct {
	PlanID                string     `json:"plan_id"`
	InvoiceQuota          int        `json:"invoice_quota"`
	InvoicesUsed          int        `json:"invoices_used"`
	QuoteQuota            int        `json:"quote_quota"`
	QuotesUsed            int        `json:"quotes_used"`
	MaterialRecordsUsed   int        `json:"material_records_used"`
	MaterialRecordsStored int64      `json:"material_records_stored"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
}

// ToPlanResponse converts a domain plan to a PlanResponse
func ToPlanResponse(p *billing.SubscriptionPlan) PlanResponse {
	return PlanResponse{
		PlanID:           p.PlanID,
		Name:             p.Name,
		Price:            p.Price,
		InvoiceQuota:     p.InvoiceQuota,
		QuoteQuota:       p.QuoteQuota,
		PremiumTemplates: p.PremiumTemplates,
	}
}

// LedgerService owns plan switches and the material usage ledger. Counter
// movement always happens under a lock on the user row, in the same
// transaction as the record that justifies it.
type LedgerService struct {
	scope  TransactionScope
	logger *zap.Logger
	now    func() time.Time
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope TransactionScope, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		scope:  scope,
		logger: logger,
		now:    time.Now,
	}
}

// ListPlans returns the active plans
func (s *LedgerService) ListPlans(ctx context.Context) ([]PlanResponse, error) {
	var responses []PlanResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plans, err := repos.PlanRepo().FindAllActive(ctx)
		if err != nil {
			return err
		}
		responses = make([]PlanResponse, 0, len(plans))
		for i := range plans {
			responses = append(responses, ToPlanResponse(&plans[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// UpdateSubscription moves the user to a new plan. Usage counters reset
// and the per-invoice bundle gets its 30-day window; the whole switch is
// one transaction under a lock on the user row.
func (s *LedgerService) UpdateSubscription(ctx context.Context, userID uuid.UUID, planID string) (*UsageResponse, error) {
	var response UsageResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		plan, err := repos.PlanRepo().FindByPlanID(ctx, planID)
		if err != nil {
			return err
		}

		user, err := repos.UserRepo().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.ApplySubscription(plan.PlanID, plan.InvoiceQuota, plan.QuoteQuota, s.now()); err != nil {
			return err
		}
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}

		response = s.usageOf(ctx, repos, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription updated",
		zap.String("user_id", userID.String()),
		zap.String("plan_id", planID))
	return &response, nil
}

// TrackMaterialUsage records an ad-hoc pull of a curated catalog item,
// outside any document.
func (s *LedgerService) TrackMaterialUsage(ctx context.Context, userID, masterItemID uuid.UUID) (*UsageResponse, error) {
	var response UsageResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.MasterItemRepo().FindByID(ctx, masterItemID); err != nil {
			return err
		}

		user, err := repos.UserRepo().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		usage, err := billing.NewMaterialUsage(userID, masterItemID, nil, nil, s.now())
		if err != nil {
			return err
		}
		if err := repos.UsageRepo().Save(ctx, usage); err != nil {
			return err
		}

		user.RecordMaterialUsage()
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}

		response = s.usageOf(ctx, repos, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetUsage returns the user's current ledger state
func (s *LedgerService) GetUsage(ctx context.Context, userID uuid.UUID) (*UsageResponse, error) {
	var response UsageResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		user, err := repos.UserRepo().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		response = s.usageOf(ctx, repos, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *LedgerService) usageOf(ctx context.Context, repos TransactionalRepositories, user *identity.User) UsageResponse {
	stored, err := repos.UsageRepo().CountForUser(ctx, user.ID)
	if err != nil {
		s.logger.Warn("material usage count unavailable", zap.Error(err))
	}
	return UsageResponse{
		PlanID:                user.PlanID,
		InvoiceQuota:          user.InvoiceQuota,
		InvoicesUsed:          user.InvoicesUsed,
		QuoteQuota:            user.QuoteQuota,
		QuotesUsed:            user.QuotesUsed,
		MaterialRecordsUsed:   user.MaterialRecordsUsed,
		MaterialRecordsStored: stored,
		SubscriptionStatus:    string(user.SubscriptionStatus),
		SubscriptionExpiresAt: user.SubscriptionExpiresAt,
	}
}
