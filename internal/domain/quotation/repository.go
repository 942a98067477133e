package quotation

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuotationRepository defines persistence operations for quotations
type QuotationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Quotation, error)

	// FindByIDForUpdate loads the quotation row (items included) under a
	// row-level write lock for item mutations and recomputes.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Quotation, error)

	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Quotation, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByClient and CountByCompanyProfile back the referential
	// integrity guard.
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
	CountByCompanyProfile(ctx context.Context, companyProfileID uuid.UUID) (int64, error)

	// NextNumber issues the next quotation number for the user and year,
	// e.g. QUO-2026-0042.
	NextNumber(ctx context.Context, userID uuid.UUID, year int) (string, error)

	Save(ctx context.Context, quotation *Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
