package catalog

import (
	"context"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyItemService handles user-owned catalog items. Items created from
// a curated master entry keep an association to it but evolve on their
// own; the master stays untouched either way.
type CompanyItemService struct {
	itemRepo   catalog.CompanyItemRepository
	masterRepo catalog.MasterItemRepository
	logger     *zap.Logger
}

// NewCompanyItemService creates a new CompanyItemService
func NewCompanyItemService(itemRepo catalog.CompanyItemRepository, masterRepo catalog.MasterItemRepository, logger *zap.Logger) *CompanyItemService {
	return &CompanyItemService{
		itemRepo:   itemRepo,
		masterRepo: masterRepo,
		logger:     logger,
	}
}

// Create creates a company item, optionally prefilled from a master entry
func (s *CompanyItemService) Create(ctx context.Context, userID uuid.UUID, req CreateCompanyItemRequest) (*CompanyItemResponse, error) {
	category := req.Category
	name := req.Name
	unit := req.Unit
	price := req.Price

	if req.MasterItemID != nil {
		master, err := s.masterRepo.FindByID(ctx, *req.MasterItemID)
		if err != nil {
			return nil, err
		}
		if !master.IsActive {
			return nil, shared.NewValidationError("Catalog item is no longer active")
		}
		if category == "" {
			category = master.Category
		}
		if name == "" {
			name = master.Name
		}
		if unit == "" {
			unit = master.Unit
		}
		if price == nil {
			price = &master.DefaultPrice
		}
	}
	if price == nil {
		return nil, shared.NewValidationError("Price is required")
	}

	item, err := catalog.NewCompanyItem(userID, req.MasterItemID, category, name, unit, *price)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("company item created",
		zap.String("user_id", userID.String()),
		zap.String("item_id", item.ID.String()))
	response := ToCompanyItemResponse(item)
	return &response, nil
}

// GetByID retrieves a company item by ID
func (s *CompanyItemService) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*CompanyItemResponse, error) {
	item, err := s.itemRepo.FindByIDForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToCompanyItemResponse(item)
	return &response, nil
}

// List retrieves the user's company items
func (s *CompanyItemService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]CompanyItemResponse, error) {
	items, err := s.itemRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]CompanyItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToCompanyItemResponse(&items[i]))
	}
	return responses, nil
}

// Update updates a company item
func (s *CompanyItemService) Update(ctx context.Context, userID, itemID uuid.UUID, req UpdateCompanyItemRequest) (*CompanyItemResponse, error) {
	item, err := s.itemRepo.FindByIDForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.Apply(catalog.CompanyItemPatch{
		Category: req.Category,
		Name:     req.Name,
		Unit:     req.Unit,
		Price:    req.Price,
	}); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToCompanyItemResponse(item)
	return &response, nil
}

// Delete removes a company item. Documents carry copied line data, not
// references, so no integrity guard applies here.
func (s *CompanyItemService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForUser(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, item.ID)
}
