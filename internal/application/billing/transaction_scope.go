package billing

import (
	"context"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to the repositories the
// usage ledger touches.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories ledger
// operations need within a transaction. The user row carries the counters
// and is always locked before they move.
type TransactionalRepositories interface {
	UserRepo() identity.UserRepository
	PlanRepo() billing.SubscriptionPlanRepository
	UsageRepo() billing.MaterialUsageRepository
	MasterItemRepo() catalog.MasterItemRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	userRepo       identity.UserRepository
	planRepo       billing.SubscriptionPlanRepository
	usageRepo      billing.MaterialUsageRepository
	masterItemRepo catalog.MasterItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	userRepo identity.UserRepository,
	planRepo billing.SubscriptionPlanRepository,
	usageRepo billing.MaterialUsageRepository,
	masterItemRepo catalog.MasterItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		userRepo:       userRepo,
		planRepo:       planRepo,
		usageRepo:      usageRepo,
		masterItemRepo: masterItemRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository { return s.userRepo }

// PlanRepo returns the subscription plan repository
func (s *NoOpTransactionScope) PlanRepo() billing.SubscriptionPlanRepository { return s.planRepo }

// UsageRepo returns the material usage repository
func (s *NoOpTransactionScope) UsageRepo() billing.MaterialUsageRepository { return s.usageRepo }

// MasterItemRepo returns the master item repository
func (s *NoOpTransactionScope) MasterItemRepo() catalog.MasterItemRepository {
	return s.masterItemRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
