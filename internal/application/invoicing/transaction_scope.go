package invoicing

import (
	"context"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the repositories an
// invoice operation touches. When a function is executed within a scope,
// all repository operations share one database transaction and commit or
// roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories invoice
// operations need within a transaction.
//
// Aggregate boundary notes:
//   - InvoiceRepo: the Invoice aggregate root. Line items are child
//     entities persisted through the aggregate, never independently.
//   - UserRepo: the usage ledger lives on the user row; creation locks it
//     via FindByIDForUpdate before the check-then-increment.
//   - ProfileRepo/ClientRepo/TaxRateRepo: read-side lookups resolved
//     inside the same transaction so the snapshot is consistent.
type TransactionalRepositories interface {
	InvoiceRepo() invoicing.InvoiceRepository
	UserRepo() identity.UserRepository
	ProfileRepo() company.ProfileRepository
	ClientRepo() partner.ClientRepository
	TaxRateRepo() catalog.TaxRateRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	invoiceRepo invoicing.InvoiceRepository
	userRepo    identity.UserRepository
	profileRepo company.ProfileRepository
	clientRepo  partner.ClientRepository
	taxRateRepo catalog.TaxRateRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	invoiceRepo invoicing.InvoiceRepository,
	userRepo identity.UserRepository,
	profileRepo company.ProfileRepository,
	clientRepo partner.ClientRepository,
	taxRateRepo catalog.TaxRateRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		clientRepo:  clientRepo,
		taxRateRepo: taxRateRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() invoicing.InvoiceRepository { return s.invoiceRepo }

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository { return s.userRepo }

// ProfileRepo returns the company profile repository
func (s *NoOpTransactionScope) ProfileRepo() company.ProfileRepository { return s.profileRepo }

// ClientRepo returns the client repository
func (s *NoOpTransactionScope) ClientRepo() partner.ClientRepository { return s.clientRepo }

// TaxRateRepo returns the tax rate repository
func (s *NoOpTransactionScope) TaxRateRepo() catalog.TaxRateRepository { return s.taxRateRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
