package catalog

import (
	"context"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TermService handles user-owned terms and conditions. Each (user,
// category) pair keeps at most one default term, and exactly one while
// the pair has any terms at all; writes that touch the flag lock the
// whole category scope first.
type TermService struct {
	scope      TransactionScope
	masterRepo catalog.MasterTermRepository
	termRepo   catalog.CompanyTermRepository
	logger     *zap.Logger
}

// NewTermService creates a new TermService
func NewTermService(scope TransactionScope, masterRepo catalog.MasterTermRepository, termRepo catalog.CompanyTermRepository, logger *zap.Logger) *TermService {
	return &TermService{
		scope:      scope,
		masterRepo: masterRepo,
		termRepo:   termRepo,
		logger:     logger,
	}
}

// Create creates a company term. The first term in a category becomes
// that category's default regardless of the request; a later term created
// with MakeDefault demotes the current default in the same transaction.
func (s *TermService) Create(ctx context.Context, userID uuid.UUID, req CreateCompanyTermRequest) (*CompanyTermResponse, error) {
	if req.MasterTermID != nil {
		if _, err := s.masterRepo.FindByID(ctx, *req.MasterTermID); err != nil {
			return nil, err
		}
	}

	var response CompanyTermResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		term, err := catalog.NewCompanyTerm(userID, req.MasterTermID, req.Category, req.Title, req.Content)
		if err != nil {
			return err
		}

		siblings, err := repos.CompanyTermRepo().FindByUserAndCategoryForUpdate(ctx, userID, term.Category)
		if err != nil {
			return err
		}

		if len(siblings) == 0 || req.MakeDefault {
			term.MarkDefault()
			demoted := make([]*catalog.CompanyTerm, 0, len(siblings))
			for i := range siblings {
				if siblings[i].IsDefault {
					siblings[i].ClearDefault()
					demoted = append(demoted, &siblings[i])
				}
			}
			if len(demoted) > 0 {
				if err := repos.CompanyTermRepo().SaveAll(ctx, demoted); err != nil {
					return err
				}
			}
		}

		if err := repos.CompanyTermRepo().Save(ctx, term); err != nil {
			return err
		}
		response = ToCompanyTermResponse(term)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("company term created",
		zap.String("user_id", userID.String()),
		zap.String("term_id", response.ID.String()),
		zap.String("category", response.Category))
	return &response, nil
}

// GetByID retrieves a company term by ID
func (s *TermService) GetByID(ctx context.Context, userID, termID uuid.UUID) (*CompanyTermResponse, error) {
	term, err := s.termRepo.FindByIDForUser(ctx, userID, termID)
	if err != nil {
		return nil, err
	}
	response := ToCompanyTermResponse(term)
	return &response, nil
}

// List retrieves the user's company terms
func (s *TermService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]CompanyTermResponse, error) {
	terms, err := s.termRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]CompanyTermResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, ToCompanyTermResponse(&terms[i]))
	}
	return responses, nil
}

// Update updates a term's title and content. Category and the default
// flag cannot move here.
func (s *TermService) Update(ctx context.Context, userID, termID uuid.UUID, req UpdateCompanyTermRequest) (*CompanyTermResponse, error) {
	term, err := s.termRepo.FindByIDForUser(ctx, userID, termID)
	if err != nil {
		return nil, err
	}
	if err := term.Apply(catalog.CompanyTermPatch{
		Title:   req.Title,
		Content: req.Content,
	}); err != nil {
		return nil, err
	}
	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}
	response := ToCompanyTermResponse(term)
	return &response, nil
}

// SetDefault makes the given term its category's default and demotes the
// previous one, atomically.
func (s *TermService) SetDefault(ctx context.Context, userID, termID uuid.UUID) (*CompanyTermResponse, error) {
	var response CompanyTermResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		term, err := repos.CompanyTermRepo().FindByIDForUser(ctx, userID, termID)
		if err != nil {
			return err
		}

		siblings, err := repos.CompanyTermRepo().FindByUserAndCategoryForUpdate(ctx, userID, term.Category)
		if err != nil {
			return err
		}

		var target *catalog.CompanyTerm
		changed := make([]*catalog.CompanyTerm, 0, 2)
		for i := range siblings {
			t := &siblings[i]
			if t.ID == termID {
				target = t
				continue
			}
			if t.IsDefault {
				t.ClearDefault()
				changed = append(changed, t)
			}
		}
		if target == nil {
			return shared.ErrNotFound
		}
		if !target.IsDefault {
			target.MarkDefault()
			changed = append(changed, target)
		}

		if len(changed) > 0 {
			if err := repos.CompanyTermRepo().SaveAll(ctx, changed); err != nil {
				return err
			}
		}
		response = ToCompanyTermResponse(target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a term. Deleting the category's default promotes the
// most recently created sibling so the category never ends up with terms
// but no default.
func (s *TermService) Delete(ctx context.Context, userID, termID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		term, err := repos.CompanyTermRepo().FindByIDForUser(ctx, userID, termID)
		if err != nil {
			return err
		}

		siblings, err := repos.CompanyTermRepo().FindByUserAndCategoryForUpdate(ctx, userID, term.Category)
		if err != nil {
			return err
		}

		var target *catalog.CompanyTerm
		var newest *catalog.CompanyTerm
		for i := range siblings {
			t := &siblings[i]
			if t.ID == termID {
				target = t
				continue
			}
			// Newest sibling wins; equal timestamps fall back to the
			// larger id so promotion is deterministic.
			if newest == nil || t.CreatedAt.After(newest.CreatedAt) ||
				(t.CreatedAt.Equal(newest.CreatedAt) && t.ID.String() > newest.ID.String()) {
				newest = t
			}
		}
		if target == nil {
			return shared.ErrNotFound
		}

		if err := repos.CompanyTermRepo().Delete(ctx, target.ID); err != nil {
			return err
		}

		if target.IsDefault && newest != nil {
			newest.MarkDefault()
			if err := repos.CompanyTermRepo().Save(ctx, newest); err != nil {
				return err
			}
		}
		return nil
	})
}
