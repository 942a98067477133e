package persistence

import (
	"context"

	appcompany "github.com/billing/backend/internal/application/company"
	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/quotation"
	"gorm.io/gorm"
)

// GormProfileTransactionScope implements the company TransactionScope
// using GORM transactions. Default-flag changes and guarded deletes lock
// the profile rows and commit as one unit.
type GormProfileTransactionScope struct {
	db *gorm.DB
}

// NewGormProfileTransactionScope creates a new GormProfileTransactionScope
func NewGormProfileTransactionScope(db *gorm.DB) *GormProfileTransactionScope {
	return &GormProfileTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormProfileTransactionScope) Execute(ctx context.Context, fn func(repos appcompany.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProfileRepositories{tx: tx})
	})
}

type gormProfileRepositories struct {
	tx *gorm.DB
}

func (r *gormProfileRepositories) ProfileRepo() company.ProfileRepository {
	return NewGormProfileRepository(r.tx)
}

func (r *gormProfileRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormProfileRepositories) InvoiceRepo() invoicing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormProfileRepositories) QuotationRepo() quotation.QuotationRepository {
	return NewGormQuotationRepository(r.tx)
}

var _ appcompany.TransactionScope = (*GormProfileTransactionScope)(nil)
var _ appcompany.TransactionalRepositories = (*gormProfileRepositories)(nil)
