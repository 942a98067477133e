package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// SubscriptionStatus represents the state of a user's subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// UnlimitedQuota marks a quota field as unbounded
const UnlimitedQuota = -1

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is the aggregate root for account and usage-ledger state. The usage
// counters are mutated only through the Record* methods below; services
// must load the row under a FOR UPDATE lock before calling them so that
// check-then-increment sequences serialize per user.
type User struct {
	shared.BaseAggregateRoot
	Email                 string
	PasswordHash          string
	Name                  string
	PlanID                string
	InvoiceQuota          int // -1 = unlimited
	InvoicesUsed          int
	QuoteQuota            int // -1 = unlimited
	QuotesUsed            int
	MaterialRecordsUsed   int
	SubscriptionStatus    SubscriptionStatus
	SubscriptionExpiresAt *time.Time // set only for time-boxed plans
}

// NewUser creates a new user on the given plan with its quotas
func NewUser(email, password, name, planID string, invoiceQuota, quoteQuota int) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewValidationError("Invalid email address")
	}
	if len(password) < 8 {
		return nil, shared.NewValidationError("Password must be at least 8 characters")
	}
	if planID == "" {
		return nil, shared.NewValidationError("Plan ID cannot be empty")
	}
	if invoiceQuota < UnlimitedQuota || quoteQuota < UnlimitedQuota {
		return nil, shared.NewValidationError("Quota must be -1 (unlimited) or non-negative")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Email:              email,
		PasswordHash:       string(hash),
		Name:               strings.TrimSpace(name),
		PlanID:             planID,
		InvoiceQuota:       invoiceQuota,
		QuoteQuota:         quoteQuota,
		SubscriptionStatus: SubscriptionStatusActive,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// bundleExpired reports whether a time-boxed plan has lapsed at the given instant
func (u *User) bundleExpired(now time.Time) bool {
	return u.PlanID == PlanPerInvoice && u.SubscriptionExpiresAt != nil && now.After(*u.SubscriptionExpiresAt)
}

// CheckInvoiceQuota decides whether the user may create another invoice.
// The expiry check runs first so a lapsed bundle is reported as such even
// when unused quota remains.
func (u *User) CheckInvoiceQuota(now time.Time) error {
	if u.bundleExpired(now) {
		return shared.NewSubscriptionExpiredError("bundle expired")
	}
	if u.InvoiceQuota != UnlimitedQuota && u.InvoicesUsed >= u.InvoiceQuota {
		return shared.NewQuotaExceededError("quota exceeded")
	}
	return nil
}

// CheckQuoteQuota decides whether the user may create another quotation
func (u *User) CheckQuoteQuota(now time.Time) error {
	if u.bundleExpired(now) {
		return shared.NewSubscriptionExpiredError("bundle expired")
	}
	if u.QuoteQuota != UnlimitedQuota && u.QuotesUsed >= u.QuoteQuota {
		return shared.NewQuotaExceededError("quota exceeded")
	}
	return nil
}

// RecordInvoiceIssued increments the invoice usage counter. Called only
// after the invoice row has been created in the same transaction.
func (u *User) RecordInvoiceIssued() {
	u.InvoicesUsed++
	u.Touch()
}

// RecordQuoteIssued increments the quotation usage counter
func (u *User) RecordQuoteIssued() {
	u.QuotesUsed++
	u.Touch()
}

// RecordMaterialUsage increments the material usage counter
func (u *User) RecordMaterialUsage() {
	u.MaterialRecordsUsed++
	u.Touch()
}

// ApplySubscription switches the user to a new plan: usage counters reset,
// status becomes active, and the per-invoice bundle gets a 30-day expiry.
// Other plans carry no expiry.
func (u *User) ApplySubscription(planID string, invoiceQuota, quoteQuota int, now time.Time) error {
	if planID == "" {
		return shared.NewValidationError("Plan ID cannot be empty")
	}
	if invoiceQuota < UnlimitedQuota || quoteQuota < UnlimitedQuota {
		return shared.NewValidationError("Quota must be -1 (unlimited) or non-negative")
	}

	u.PlanID = planID
	u.InvoiceQuota = invoiceQuota
	u.QuoteQuota = quoteQuota
	u.InvoicesUsed = 0
	u.QuotesUsed = 0
	u.MaterialRecordsUsed = 0
	u.SubscriptionStatus = SubscriptionStatusActive
	if planID == PlanPerInvoice {
		expiry := now.Add(30 * 24 * time.Hour)
		u.SubscriptionExpiresAt = &expiry
	} else {
		u.SubscriptionExpiresAt = nil
	}
	u.Touch()

	return nil
}

// Rename updates the display name
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Name cannot be empty")
	}
	u.Name = name
	u.Touch()
	return nil
}
