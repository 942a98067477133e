package partner

import (
	"context"
	"time"

	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Country    string `json:"country" binding:"required,len=2"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	TaxNumber  string `json:"tax_number"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name       *string `json:"name"`
	Country    *string `json:"country"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	TaxNumber  *string `json:"tax_number"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
}

// ClientResponse represents a client in responses
type ClientResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	IsFromCentralRepo bool      `json:"is_from_central_repo"`
	Street            string    `json:"street,omitempty"`
	City              string    `json:"city,omitempty"`
	PostalCode        string    `json:"postal_code,omitempty"`
	Country           string    `json:"country"`
	TaxNumber         string    `json:"tax_number,omitempty"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to a ClientResponse
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:                c.ID,
		Name:              c.Name,
		IsFromCentralRepo: c.IsFromCentralRepo,
		Street:            c.Street,
		City:              c.City,
		PostalCode:        c.PostalCode,
		Country:           c.Country,
		TaxNumber:         c.TaxNumber,
		Email:             c.Email,
		Phone:             c.Phone,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ClientService handles client business operations. Clients referenced by
// documents survive deletion attempts, and curated central-repository
// records are read-only.
type ClientService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(scope TransactionScope, logger *zap.Logger) *ClientService {
	return &ClientService{
		scope:  scope,
		logger: logger,
	}
}

// Create creates a new user-owned client
func (s *ClientService) Create(ctx context.Context, userID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(userID, req.Name, req.Country)
	if err != nil {
		return nil, err
	}
	if err := client.Apply(partner.Patch{
		Street:     &req.Street,
		City:       &req.City,
		PostalCode: &req.PostalCode,
		TaxNumber:  &req.TaxNumber,
		Email:      &req.Email,
		Phone:      &req.Phone,
	}); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.ClientRepo().Save(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("user_id", userID.String()),
		zap.String("client_id", client.ID.String()))
	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, userID, clientID uuid.UUID) (*ClientResponse, error) {
	var response ClientResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		client, err := s.visibleClient(ctx, repos, userID, clientID)
		if err != nil {
			return err
		}
		response = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves clients of a user with filtering and pagination
func (s *ClientService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ClientResponse, int64, error) {
	var (
		responses []ClientResponse
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		clients, err := repos.ClientRepo().FindAllForUser(ctx, userID, filter)
		if err != nil {
			return err
		}
		total, err = repos.ClientRepo().CountForUser(ctx, userID, filter)
		if err != nil {
			return err
		}
		responses = make([]ClientResponse, 0, len(clients))
		for i := range clients {
			responses = append(responses, ToClientResponse(&clients[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// Update updates client fields. Central-repository records refuse the
// patch inside the aggregate.
func (s *ClientService) Update(ctx context.Context, userID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	var response ClientResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByIDForUser(ctx, userID, clientID)
		if err != nil {
			return err
		}
		if err := client.Apply(partner.Patch{
			Name:       req.Name,
			Country:    req.Country,
			Street:     req.Street,
			City:       req.City,
			PostalCode: req.PostalCode,
			TaxNumber:  req.TaxNumber,
			Email:      req.Email,
			Phone:      req.Phone,
		}); err != nil {
			return err
		}
		if err := repos.ClientRepo().Save(ctx, client); err != nil {
			return err
		}
		response = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a client unless any document references it
func (s *ClientService) Delete(ctx context.Context, userID, clientID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Invoice and quotation creation lock the user row before writing;
		// taking the same lock here serializes the reference counts below
		// with concurrent document creation.
		if _, err := repos.UserRepo().FindByIDForUpdate(ctx, userID); err != nil {
			return err
		}

		client, err := repos.ClientRepo().FindByIDForUser(ctx, userID, clientID)
		if err != nil {
			return err
		}
		if client.IsFromCentralRepo {
			return shared.ErrForbidden
		}

		invoiceCount, err := repos.InvoiceRepo().CountByClient(ctx, clientID)
		if err != nil {
			return err
		}
		quoteCount, err := repos.QuotationRepo().CountByClient(ctx, clientID)
		if err != nil {
			return err
		}
		if invoiceCount > 0 || quoteCount > 0 {
			return shared.NewReferencedEntityError("client")
		}

		return repos.ClientRepo().Delete(ctx, clientID)
	})
}

// visibleClient resolves a client the user may read: their own or a
// central-repository record.
func (s *ClientService) visibleClient(ctx context.Context, repos TransactionalRepositories, userID, clientID uuid.UUID) (*partner.Client, error) {
	client, err := repos.ClientRepo().FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !client.IsFromCentralRepo && !client.IsOwnedBy(userID) {
		return nil, shared.ErrNotFound
	}
	return client, nil
}
