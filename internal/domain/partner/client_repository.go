package partner

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Client, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Client, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
