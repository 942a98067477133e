package company

import (
	"context"

	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService handles company profile business operations and owns the
// per-user default invariant: at most one default per user, and exactly one
// as soon as the user has any profile at all. Every write that can touch
// the flag locks all of the user's profile rows first, so two concurrent
// mutations cannot leave zero or two defaults behind.
type ProfileService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(scope TransactionScope, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		scope:  scope,
		logger: logger,
	}
}

// Create creates a new company profile. The first profile of a user
// becomes the default regardless of the request; a later profile created
// with MakeDefault demotes the current default in the same transaction.
func (s *ProfileService) Create(ctx context.Context, userID uuid.UUID, req CreateProfileRequest) (*ProfileResponse, error) {
	var response ProfileResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		siblings, err := repos.ProfileRepo().FindAllForUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		profile, err := company.NewProfile(userID, req.Name, req.Country)
		if err != nil {
			return err
		}
		if err := profile.Apply(company.Patch{
			Street:     &req.Street,
			City:       &req.City,
			PostalCode: &req.PostalCode,
			TaxNumber:  &req.TaxNumber,
			BankName:   &req.BankName,
			IBAN:       &req.IBAN,
			BIC:        &req.BIC,
			Email:      &req.Email,
			Phone:      &req.Phone,
		}); err != nil {
			return err
		}

		if len(siblings) == 0 || req.MakeDefault {
			profile.MarkDefault()
			demoted := make([]*company.Profile, 0, len(siblings))
			for i := range siblings {
				if siblings[i].IsDefault {
					siblings[i].ClearDefault()
					demoted = append(demoted, &siblings[i])
				}
			}
			if len(demoted) > 0 {
				if err := repos.ProfileRepo().SaveAll(ctx, demoted); err != nil {
					return err
				}
			}
		}

		if err := repos.ProfileRepo().Save(ctx, profile); err != nil {
			return err
		}
		response = ToProfileResponse(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("company profile created",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", response.ID.String()))
	return &response, nil
}

// GetByID retrieves a profile by ID
func (s *ProfileService) GetByID(ctx context.Context, userID, profileID uuid.UUID) (*ProfileResponse, error) {
	var response ProfileResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		profile, err := repos.ProfileRepo().FindByIDForUser(ctx, userID, profileID)
		if err != nil {
			return err
		}
		response = ToProfileResponse(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetDefault retrieves the user's default profile
func (s *ProfileService) GetDefault(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	var response ProfileResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		profile, err := repos.ProfileRepo().FindDefaultForUser(ctx, userID)
		if err != nil {
			return err
		}
		response = ToProfileResponse(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves all profiles of a user
func (s *ProfileService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ProfileResponse, error) {
	var responses []ProfileResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		profiles, err := repos.ProfileRepo().FindAllForUser(ctx, userID, filter)
		if err != nil {
			return err
		}
		responses = make([]ProfileResponse, 0, len(profiles))
		for i := range profiles {
			responses = append(responses, ToProfileResponse(&profiles[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// Update updates profile fields. The default flag cannot move here.
func (s *ProfileService) Update(ctx context.Context, userID, profileID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	var response ProfileResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		profile, err := repos.ProfileRepo().FindByIDForUser(ctx, userID, profileID)
		if err != nil {
			return err
		}
		if err := profile.Apply(company.Patch{
			Name:       req.Name,
			Country:    req.Country,
			Street:     req.Street,
			City:       req.City,
			PostalCode: req.PostalCode,
			TaxNumber:  req.TaxNumber,
			BankName:   req.BankName,
			IBAN:       req.IBAN,
			BIC:        req.BIC,
			Email:      req.Email,
			Phone:      req.Phone,
		}); err != nil {
			return err
		}
		if err := repos.ProfileRepo().Save(ctx, profile); err != nil {
			return err
		}
		response = ToProfileResponse(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// SetDefault makes the given profile the user's default and demotes the
// previous one, atomically.
func (s *ProfileService) SetDefault(ctx context.Context, userID, profileID uuid.UUID) (*ProfileResponse, error) {
	var response ProfileResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		profiles, err := repos.ProfileRepo().FindAllForUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		var target *company.Profile
		changed := make([]*company.Profile, 0, 2)
		for i := range profiles {
			p := &profiles[i]
			if p.ID == profileID {
				target = p
				continue
			}
			if p.IsDefault {
				p.ClearDefault()
				changed = append(changed, p)
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
			if err := repos.ProfileRepo().SaveAll(ctx, changed); err != nil {
				return err
			}
		}
		response = ToProfileResponse(target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a profile. Profiles referenced by any document are kept;
// deleting the default promotes the most recently created sibling so the
// user never ends up with profiles but no default.
func (s *ProfileService) Delete(ctx context.Context, userID, profileID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Invoice and quotation creation lock the user row before writing;
		// taking the same lock here serializes the reference counts below
		// with concurrent document creation.
		if _, err := repos.UserRepo().FindByIDForUpdate(ctx, userID); err != nil {
			return err
		}

		profiles, err := repos.ProfileRepo().FindAllForUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		var target *company.Profile
		siblings := make([]*company.Profile, 0, len(profiles))
		for i := range profiles {
			if profiles[i].ID == profileID {
				target = &profiles[i]
			} else {
				siblings = append(siblings, &profiles[i])
			}
		}
		if target == nil {
			return shared.ErrNotFound
		}

		invoiceCount, err := repos.InvoiceRepo().CountByCompanyProfile(ctx, profileID)
		if err != nil {
			return err
		}
		quoteCount, err := repos.QuotationRepo().CountByCompanyProfile(ctx, profileID)
		if err != nil {
			return err
		}
		if invoiceCount > 0 || quoteCount > 0 {
			return shared.NewReferencedEntityError("company profile")
		}

		if err := repos.ProfileRepo().Delete(ctx, profileID); err != nil {
			return err
		}

		if target.IsDefault && len(siblings) > 0 {
			// Newest sibling wins; equal timestamps fall back to the
			// larger id so promotion is deterministic.
			promoted := siblings[0]
			for _, p := range siblings[1:] {
				if p.CreatedAt.After(promoted.CreatedAt) ||
					(p.CreatedAt.Equal(promoted.CreatedAt) && p.ID.String() > promoted.ID.String()) {
					promoted = p
				}
			}
			promoted.MarkDefault()
			if err := repos.ProfileRepo().Save(ctx, promoted); err != nil {
				return err
			}
			s.logger.Info("default profile promoted",
				zap.String("user_id", userID.String()),
				zap.String("profile_id", promoted.ID.String()))
		}
		return nil
	})
}
