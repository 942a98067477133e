package persistence

import (
	"context"

	apppartner "github.com/billing/backend/internal/application/partner"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/quotation"
	"gorm.io/gorm"
)

// GormClientTransactionScope implements the partner TransactionScope using
// GORM transactions. Client deletion checks document references and removes
// the row in the same transaction, so no document can slip in between.
type GormClientTransactionScope struct {
	db *gorm.DB
}

// NewGormClientTransactionScope creates a new GormClientTransactionScope
func NewGormClientTransactionScope(db *gorm.DB) *GormClientTransactionScope {
	return &GormClientTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormClientTransactionScope) Execute(ctx context.Context, fn func(repos apppartner.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormClientRepositories{tx: tx})
	})
}

type gormClientRepositories struct {
	tx *gorm.DB
}

func (r *gormClientRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormClientRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormClientRepositories) InvoiceRepo() invoicing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormClientRepositories) QuotationRepo() quotation.QuotationRepository {
	return NewGormQuotationRepository(r.tx)
}

var _ apppartner.TransactionScope = (*GormClientTransactionScope)(nil)
var _ apppartner.TransactionalRepositories = (*gormClientRepositories)(nil)
