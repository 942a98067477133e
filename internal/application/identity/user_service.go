package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles registration and account operations. New accounts
// start on the free plan with its quotas taken from the plan table.
type UserService struct {
	userRepo identity.UserRepository
	planRepo billing.SubscriptionPlanRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, planRepo billing.SubscriptionPlanRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		planRepo: planRepo,
		logger:   logger,
	}
}

// Register creates a new account on the free plan
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "An account with this email already exists")
	}

	plan, err := s.planRepo.FindByPlanID(ctx, identity.PlanFree)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(email, req.Password, req.Name, plan.PlanID, plan.InvoiceQuota, plan.QuoteQuota)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		// The existence check above races with concurrent registration;
		// the unique index on email is the arbiter.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "An account with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	response := ToUserResponse(user)
	return &response, nil
}

// Login verifies credentials and returns the account
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves an account by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Rename changes the account display name
func (s *UserService) Rename(ctx context.Context, userID uuid.UUID, name string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}
