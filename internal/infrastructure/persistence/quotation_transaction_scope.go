package persistence

import (
	"context"

	appquotation "github.com/billing/backend/internal/application/quotation"
	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/quotation"
	"gorm.io/gorm"
)

// GormQuotationTransactionScope implements the quotation TransactionScope
// using GORM transactions. Conversion to invoice runs entirely inside one
// transaction: the quotation is marked converted and the invoice created,
// or neither happens.
type GormQuotationTransactionScope struct {
	db *gorm.DB
}

// NewGormQuotationTransactionScope creates a new GormQuotationTransactionScope
func NewGormQuotationTransactionScope(db *gorm.DB) *GormQuotationTransactionScope {
	return &GormQuotationTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormQuotationTransactionScope) Execute(ctx context.Context, fn func(repos appquotation.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormQuotationRepositories{tx: tx})
	})
}

type gormQuotationRepositories struct {
	tx *gorm.DB
}

func (r *gormQuotationRepositories) QuotationRepo() quotation.QuotationRepository {
	return NewGormQuotationRepository(r.tx)
}

func (r *gormQuotationRepositories) InvoiceRepo() invoicing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormQuotationRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormQuotationRepositories) ProfileRepo() company.ProfileRepository {
	return NewGormProfileRepository(r.tx)
}

func (r *gormQuotationRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormQuotationRepositories) TaxRateRepo() catalog.TaxRateRepository {
	return NewGormTaxRateRepository(r.tx)
}

func (r *gormQuotationRepositories) MasterItemRepo() catalog.MasterItemRepository {
	return NewGormMasterItemRepository(r.tx)
}

func (r *gormQuotationRepositories) UsageRepo() billing.MaterialUsageRepository {
	return NewGormMaterialUsageRepository(r.tx)
}

var _ appquotation.TransactionScope = (*GormQuotationTransactionScope)(nil)
var _ appquotation.TransactionalRepositories = (*gormQuotationRepositories)(nil)
