package company

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProfileRepository defines persistence operations for company profiles
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Profile, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Profile, error)
	FindDefaultForUser(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// FindAllForUserForUpdate loads every profile row of the user under
	// row-level write locks. Default-swap and delete-with-promotion start
	// here so concurrent mutations of the same user's profiles serialize.
	FindAllForUserForUpdate(ctx context.Context, userID uuid.UUID) ([]Profile, error)

	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, profile *Profile) error
	SaveAll(ctx context.Context, profiles []*Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
