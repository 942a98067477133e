package identity

import (
	"time"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in responses. Password material never
// leaves the domain.
type UserResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	PlanID                string     `json:"plan_id"`
	InvoiceQuota          int        `json:"invoice_quota"`
	InvoicesUsed          int        `json:"invoices_used"`
	QuoteQuota            int        `json:"quote_quota"`
	QuotesUsed            int        `json:"quotes_used"`
	MaterialRecordsUsed   int        `json:"material_records_used"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user to a UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:                    u.ID,
		Email:                 u.Email,
		Name:                  u.Name,
		PlanID:                u.PlanID,
		InvoiceQuota:          u.InvoiceQuota,
		InvoicesUsed:          u.InvoicesUsed,
		QuoteQuota:            u.QuoteQuota,
		QuotesUsed:            u.QuotesUsed,
		MaterialRecordsUsed:   u.MaterialRecordsUsed,
		SubscriptionStatus:    string(u.SubscriptionStatus),
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		CreatedAt:             u.CreatedAt,
	}
}
