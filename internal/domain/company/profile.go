package company

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Profile is the aggregate root for a company profile: the issuer identity
// (name, address, banking details) printed on a user's documents.
//
// Invariant: for a fixed user, at most one profile has IsDefault set, and a
// user with at least one profile has exactly one default. The flag flips
// only through MarkDefault/ClearDefault inside a profile transaction scope;
// repositories never write it from caller input.
type Profile struct {
	shared.OwnedAggregateRoot
	Name       string
	IsDefault  bool
	Street     string
	City       string
	PostalCode string
	Country    string
	TaxNumber  string
	BankName   string
	IBAN       string
	BIC        string
	Email      string
	Phone      string
}

// NewProfile creates a new company profile. The default flag is decided by
// the invariant manager, not here: the caller's wish is carried separately.
func NewProfile(userID uuid.UUID, name, country string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Company name cannot exceed 200 characters")
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return nil, shared.NewValidationError("Country must be a 2-letter ISO code")
	}

	return &Profile{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Country:            country,
	}, nil
}

// MarkDefault flips the default flag on
func (p *Profile) MarkDefault() {
	p.IsDefault = true
	p.Touch()
}

// ClearDefault flips the default flag off
func (p *Profile) ClearDefault() {
	p.IsDefault = false
	p.Touch()
}

// Patch enumerates the updatable profile fields. Nil means "leave as is";
// invariant-relevant state (owner, default flag) is deliberately absent.
type Patch struct {
	Name       *string
	Street     *string
	City       *string
	PostalCode *string
	Country    *string
	TaxNumber  *string
	BankName   *string
	IBAN       *string
	BIC        *string
	Email      *string
	Phone      *string
}

// Apply merges the patch onto the profile
func (p *Profile) Apply(patch Patch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return shared.NewValidationError("Company name cannot be empty")
		}
		p.Name = name
	}
	if patch.Country != nil {
		country := strings.ToUpper(strings.TrimSpace(*patch.Country))
		if len(country) != 2 {
			return shared.NewValidationError("Country must be a 2-letter ISO code")
		}
		p.Country = country
	}
	if patch.Street != nil {
		p.Street = *patch.Street
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.PostalCode != nil {
		p.PostalCode = *patch.PostalCode
	}
	if patch.TaxNumber != nil {
		p.TaxNumber = *patch.TaxNumber
	}
	if patch.BankName != nil {
		p.BankName = *patch.BankName
	}
	if patch.IBAN != nil {
		p.IBAN = *patch.IBAN
	}
	if patch.BIC != nil {
		p.BIC = *patch.BIC
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	p.Touch()
	return nil
}
