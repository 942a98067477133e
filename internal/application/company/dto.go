package company

import (
	"time"

	"github.com/billing/backend/internal/domain/company"
	"github.com/google/uuid"
)

// CreateProfileRequest represents a request to create a company profile
type CreateProfileRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Country     string `json:"country" binding:"required,len=2"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	TaxNumber   string `json:"tax_number"`
	BankName    string `json:"bank_name"`
	IBAN        string `json:"iban"`
	BIC         string `json:"bic"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	MakeDefault bool   `json:"make_default"`
}

// UpdateProfileRequest represents a request to update a company profile.
// The default flag is not here: it moves only through SetDefault so the
// per-user invariant has a single write path.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Country    *string `json:"country"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	TaxNumber  *string `json:"tax_number"`
	BankName   *string `json:"bank_name"`
	IBAN       *string `json:"iban"`
	BIC        *string `json:"bic"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
}

// ProfileResponse represents a company profile in responses
type ProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	IsDefault  bool      `json:"is_default"`
	Street     string    `json:"street,omitempty"`
	City       string    `json:"city,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Country    string    `json:"country"`
	TaxNumber  string    `json:"tax_number,omitempty"`
	BankName   string    `json:"bank_name,omitempty"`
	IBAN       string    `json:"iban,omitempty"`
	BIC        string    `json:"bic,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToProfileResponse converts a domain profile to a ProfileResponse
func ToProfileResponse(p *company.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		Name:       p.Name,
		IsDefault:  p.IsDefault,
		Street:     p.Street,
		City:       p.City,
		PostalCode: p.PostalCode,
		Country:    p.Country,
		TaxNumber:  p.TaxNumber,
		BankName:   p.BankName,
		IBAN:       p.IBAN,
		BIC:        p.BIC,
		Email:      p.Email,
		Phone:      p.Phone,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
