package document

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for stored-document records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Document, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Document, error)
	FindBySource(ctx context.Context, kind Kind, sourceID uuid.UUID) ([]Document, error)
	Save(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}
