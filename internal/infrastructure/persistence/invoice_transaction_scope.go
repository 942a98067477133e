package persistence

import (
	"context"

	appinvoicing "github.com/billing/backend/internal/application/invoicing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormInvoiceTransactionScope implements the invoicing TransactionScope
// using GORM transactions. Every repository handed to the callback shares
// one transaction, so quota checks, number issuance and the aggregate
// write commit or roll back together.
type GormInvoiceTransactionScope struct {
	db *gorm.DB
}

// NewGormInvoiceTransactionScope creates a new GormInvoiceTransactionScope
func NewGormInvoiceTransactionScope(db *gorm.DB) *GormInvoiceTransactionScope {
	return &GormInvoiceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInvoiceTransactionScope) Execute(ctx context.Context, fn func(repos appinvoicing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInvoiceRepositories{tx: tx})
	})
}

type gormInvoiceRepositories struct {
	tx *gorm.DB
}

func (r *gormInvoiceRepositories) InvoiceRepo() invoicing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormInvoiceRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormInvoiceRepositories) ProfileRepo() company.ProfileRepository {
	return NewGormProfileRepository(r.tx)
}

func (r *gormInvoiceRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormInvoiceRepositories) TaxRateRepo() catalog.TaxRateRepository {
	return NewGormTaxRateRepository(r.tx)
}

var _ appinvoicing.TransactionScope = (*GormInvoiceTransactionScope)(nil)
var _ appinvoicing.TransactionalRepositories = (*gormInvoiceRepositories)(nil)
