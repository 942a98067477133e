package invoicing

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines persistence operations for invoices.
// Save persists the whole aggregate: items and derived totals move together
// in one unit of work so stored totals can never disagree with stored items.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate loads the invoice row (items included) under a
	// row-level write lock. Item mutations and recomputes start here so
	// concurrent edits of the same document serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByClient and CountByCompanyProfile back the referential
	// integrity guard.
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
	CountByCompanyProfile(ctx context.Context, companyProfileID uuid.UUID) (int64, error)

	// NextNumber issues the next invoice number for the user and year,
	// e.g. INV-2026-0042.
	NextNumber(ctx context.Context, userID uuid.UUID, year int) (string, error)

	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
