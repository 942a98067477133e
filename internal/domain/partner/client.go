package partner

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is the aggregate root for an invoice recipient. Clients flagged as
// coming from the central repository are curated records shared across
// users: their details are read-only for everyone.
type Client struct {
	shared.OwnedAggregateRoot
	Name              string
	IsFromCentralRepo bool
	Street            string
	City              string
	PostalCode        string
	Country           string
	TaxNumber         string
	Email             string
	Phone             string
}

// NewClient creates a new user-owned client
func NewClient(userID uuid.UUID, name, country string) (*Client, error) {
	name = strings.TrimSpace(name)
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Client name cannot exceed 200 characters")
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return nil, shared.NewValidationError("Country must be a 2-letter ISO code")
	}

	return &Client{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Country:            country,
	}, nil
}

// Patch enumerates the updatable client fields; nil means "leave as is"
type Patch struct {
	Name       *string
	Street     *string
	City       *string
	PostalCode *string
	Country    *string
	TaxNumber  *string
	Email      *string
	Phone      *string
}

// Apply merges the patch onto the client. Curated central-repository
// clients cannot be modified.
func (c *Client) Apply(patch Patch) error {
	if c.IsFromCentralRepo {
		return shared.ErrForbidden
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return shared.NewValidationError("Client name cannot be empty")
		}
		c.Name = name
	}
	if patch.Country != nil {
		country := strings.ToUpper(strings.TrimSpace(*patch.Country))
		if len(country) != 2 {
			return shared.NewValidationError("Country must be a 2-letter ISO code")
		}
		c.Country = country
	}
	if patch.Street != nil {
		c.Street = *patch.Street
	}
	if patch.City != nil {
		c.City = *patch.City
	}
	if patch.PostalCode != nil {
		c.PostalCode = *patch.PostalCode
	}
	if patch.TaxNumber != nil {
		c.TaxNumber = *patch.TaxNumber
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	c.Touch()
	return nil
}
