package catalog

import (
	"context"

	"github.com/billing/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to the company term
// repository. Term writes share the profile manager's locking discipline,
// scoped per (user, category).
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories term
// operations need within a transaction.
type TransactionalRepositories interface {
	CompanyTermRepo() catalog.CompanyTermRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	companyTermRepo catalog.CompanyTermRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repository
func NewNoOpTransactionScope(companyTermRepo catalog.CompanyTermRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{companyTermRepo: companyTermRepo}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CompanyTermRepo returns the company term repository
func (s *NoOpTransactionScope) CompanyTermRepo() catalog.CompanyTermRepository {
	return s.companyTermRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
