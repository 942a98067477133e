package catalog

import (
	"context"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReferenceService serves the curated read-mostly catalogs: master items
// and terms, tax rates, and document templates. Template listings hide
// premium entries from users whose plan does not include them.
type ReferenceService struct {
	masterItemRepo catalog.MasterItemRepository
	masterTermRepo catalog.MasterTermRepository
	taxRateRepo    catalog.TaxRateRepository
	templateRepo   catalog.TemplateRepository
	userRepo       identity.UserRepository
	planRepo       billing.SubscriptionPlanRepository
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(
	masterItemRepo catalog.MasterItemRepository,
	masterTermRepo catalog.MasterTermRepository,
	taxRateRepo catalog.TaxRateRepository,
	templateRepo catalog.TemplateRepository,
	userRepo identity.UserRepository,
	planRepo billing.SubscriptionPlanRepository,
) *ReferenceService {
	return &ReferenceService{
		masterItemRepo: masterItemRepo,
		masterTermRepo: masterTermRepo,
		taxRateRepo:    taxRateRepo,
		templateRepo:   templateRepo,
		userRepo:       userRepo,
		planRepo:       planRepo,
	}
}

// ListMasterItems lists curated items, optionally narrowed to a category
func (s *ReferenceService) ListMasterItems(ctx context.Context, category string, filter shared.Filter) ([]MasterItemResponse, error) {
	var items []catalog.MasterItem
	var err error
	if category != "" {
		items, err = s.masterItemRepo.FindByCategory(ctx, category, filter)
	} else {
		items, err = s.masterItemRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	responses := make([]MasterItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToMasterItemResponse(&items[i]))
	}
	return responses, nil
}

// ListMasterTerms lists curated terms for a category
func (s *ReferenceService) ListMasterTerms(ctx context.Context, category string, filter shared.Filter) ([]MasterTermResponse, error) {
	terms, err := s.masterTermRepo.FindByCategory(ctx, category, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]MasterTermResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, ToMasterTermResponse(&terms[i]))
	}
	return responses, nil
}

// ListTaxRates lists the configured tax rates
func (s *ReferenceService) ListTaxRates(ctx context.Context, filter shared.Filter) ([]TaxRateResponse, error) {
	rates, err := s.taxRateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TaxRateResponse, 0, len(rates))
	for i := range rates {
		responses = append(responses, ToTaxRateResponse(&rates[i]))
	}
	return responses, nil
}

// ListTemplates lists the templates available to a user for a document
// kind. Premium templates appear only when the user's plan carries them.
func (s *ReferenceService) ListTemplates(ctx context.Context, userID uuid.UUID, kind catalog.TemplateKind, includePremium bool) ([]TemplateResponse, error) {
	if includePremium {
		allowed, err := s.premiumAllowed(ctx, userID)
		if err != nil {
			return nil, err
		}
		includePremium = allowed
	}

	templates, err := s.templateRepo.FindByKind(ctx, kind, includePremium)
	if err != nil {
		return nil, err
	}
	responses := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		responses = append(responses, ToTemplateResponse(&templates[i]))
	}
	return responses, nil
}

// ResolveTemplate loads a template by code and checks the user's plan
// against its premium flag.
func (s *ReferenceService) ResolveTemplate(ctx context.Context, userID uuid.UUID, code string) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if template.IsPremium {
		allowed, err := s.premiumAllowed(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, shared.NewDomainError(shared.CodeForbidden, "Template requires a premium plan")
		}
	}
	response := ToTemplateResponse(template)
	return &response, nil
}

func (s *ReferenceService) premiumAllowed(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	plan, err := s.planRepo.FindByPlanID(ctx, user.PlanID)
	if err != nil {
		return false, err
	}
	return plan.PremiumTemplates, nil
}
