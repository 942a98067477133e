package company

import (
	"context"

	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/quotation"
)

// TransactionScope provides transactional access to the repositories a
// company profile operation touches.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories profile
// operations need within a transaction. The document repositories are
// read-only here: they back the referential integrity guard with counts.
// The user repository supplies the lock that serializes guarded deletes
// with document creation.
type TransactionalRepositories interface {
	ProfileRepo() company.ProfileRepository
	UserRepo() identity.UserRepository
	InvoiceRepo() invoicing.InvoiceRepository
	QuotationRepo() quotation.QuotationRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	profileRepo   company.ProfileRepository
	userRepo      identity.UserRepository
	invoiceRepo   invoicing.InvoiceRepository
	quotationRepo quotation.QuotationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	profileRepo company.ProfileRepository,
	userRepo identity.UserRepository,
	invoiceRepo invoicing.InvoiceRepository,
	quotationRepo quotation.QuotationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProfileRepo returns the company profile repository
func (s *NoOpTransactionScope) ProfileRepo() company.ProfileRepository { return s.profileRepo }

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository { return s.userRepo }

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() invoicing.InvoiceRepository { return s.invoiceRepo }

// QuotationRepo returns the quotation repository
func (s *NoOpTransactionScope) QuotationRepo() quotation.QuotationRepository {
	return s.quotationRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
