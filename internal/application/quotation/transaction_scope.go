package quotation

import (
	"context"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/quotation"
)

// TransactionScope provides transactional access to the repositories a
// quotation operation touches.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories quotation
// operations need within a transaction.
//
// The invoice repository is here because conversion creates the invoice in
// the same transaction that marks the quotation converted; the usage and
// master item repositories back the material usage ledger when catalog
// items land on a quotation.
type TransactionalRepositories interface {
	QuotationRepo() quotation.QuotationRepository
	InvoiceRepo() invoicing.InvoiceRepository
	UserRepo() identity.UserRepository
	ProfileRepo() company.ProfileRepository
	ClientRepo() partner.ClientRepository
	TaxRateRepo() catalog.TaxRateRepository
	MasterItemRepo() catalog.MasterItemRepository
	UsageRepo() billing.MaterialUsageRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	quotationRepo  quotation.QuotationRepository
	invoiceRepo    invoicing.InvoiceRepository
	userRepo       identity.UserRepository
	profileRepo    company.ProfileRepository
	clientRepo     partner.ClientRepository
	taxRateRepo    catalog.TaxRateRepository
	masterItemRepo catalog.MasterItemRepository
	usageRepo      billing.MaterialUsageRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	quotationRepo quotation.QuotationRepository,
	invoiceRepo invoicing.InvoiceRepository,
	userRepo identity.UserRepository,
	profileRepo company.ProfileRepository,
	clientRepo partner.ClientRepository,
	taxRateRepo catalog.TaxRateRepository,
	masterItemRepo catalog.MasterItemRepository,
	usageRepo billing.MaterialUsageRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		quotationRepo:  quotationRepo,
		invoiceRepo:    invoiceRepo,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		clientRepo:     clientRepo,
		taxRateRepo:    taxRateRepo,
		masterItemRepo: masterItemRepo,
		usageRepo:      usageRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// QuotationRepo returns the quotation repository
func (s *NoOpTransactionScope) QuotationRepo() quotation.QuotationRepository { return s.quotationRepo }

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

// MasterItemRepo returns the master item repository
func (s *NoOpTransactionScope) MasterItemRepo() catalog.MasterItemRepository {
	return s.masterItemRepo
}

// UsageRepo returns the material usage repository
func (s *NoOpTransactionScope) UsageRepo() billing.MaterialUsageRepository { return s.usageRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
