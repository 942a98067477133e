package partner

import (
	"context"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/quotation"
)

// TransactionScope provides transactional access to the repositories a
// client operation touches.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories client
// operations need within a transaction. The document repositories back the
// referential integrity guard with counts.
type TransactionalRepositories interface {
	ClientRepo() partner.ClientRepository
	UserRepo() identity.UserRepository
	InvoiceRepo() invoicing.InvoiceRepository
	QuotationRepo() quotation.QuotationRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	clientRepo    partner.ClientRepository
	userRepo      identity.UserRepository
	invoiceRepo   invoicing.InvoiceRepository
	quotationRepo quotation.QuotationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	clientRepo partner.ClientRepository,
	userRepo identity.UserRepository,
	invoiceRepo invoicing.InvoiceRepository,
	quotationRepo quotation.QuotationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		clientRepo:    clientRepo,
		userRepo:      userRepo,
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ClientRepo returns the client repository
func (s *NoOpTransactionScope) ClientRepo() partner.ClientRepository { return s.clientRepo }

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
