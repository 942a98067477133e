package quotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the status of a quotation
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a valid quotation Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusSent || target == StatusCancelled
	case StatusSent:
		return target == StatusAccepted || target == StatusDeclined || target == StatusCancelled
	case StatusAccepted, StatusDeclined, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// Item represents a line item on a quotation. MasterItemID, when set, links
// the line back to the shared catalog entry it was taken from - an
// association only, which also feeds the material usage ledger.
type Item struct {
	ID              uuid.UUID
	QuotationID     uuid.UUID
	MasterItemID    *uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal // 0-100
	Amount          decimal.Decimal // derived
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var hundred = decimal.NewFromInt(100)

// ItemAmount computes a line amount the same way invoices do
func ItemAmount(quantity, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return valueobject.Round2(quantity.Mul(unitPrice).Mul(factor))
}

func validateItemInputs(description string, quantity, unitPrice, discountPercent decimal.Decimal) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewValidationError("Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return shared.NewValidationError("Discount must be between 0 and 100")
	}
	return nil
}

// ItemPatch enumerates the updatable item fields; nil means "leave as is"
type ItemPatch struct {
	Description     *string
	Quantity        *decimal.Decimal
	UnitPrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
}

// AffectsAmount reports whether applying the patch changes the derived amount
func (p ItemPatch) AffectsAmount() bool {
	return p.Quantity != nil || p.UnitPrice != nil || p.DiscountPercent != nil
}

// Quotation is the aggregate root for a quotation and its line items.
// The derived totals follow the same ownership rule as invoices.
type Quotation struct {
	shared.OwnedAggregateRoot
	Number           string
	CompanyProfileID uuid.UUID
	ClientID         uuid.UUID
	Country          string
	Currency         valueobject.Currency
	Discount         decimal.Decimal // absolute currency amount
	TaxRate          decimal.Decimal // resolved percentage
	Subtotal         decimal.Decimal // derived
	Tax              decimal.Decimal // derived
	Total            decimal.Decimal // derived
	Status           Status
	Items            []Item
	Note             string
	ValidUntil       *time.Time
	SentAt           *time.Time
	AcceptedAt       *time.Time
	ConvertedInvoice *uuid.UUID // set when an invoice was created from this quotation
}

// NewQuotation creates a new draft quotation with zero totals
func NewQuotation(userID uuid.UUID, number string, companyProfileID, clientID uuid.UUID, country string, currency valueobject.Currency) (*Quotation, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if number == "" {
		return nil, shared.NewValidationError("Quotation number cannot be empty")
	}
	if companyProfileID == uuid.Nil {
		return nil, shared.NewValidationError("Company profile ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID cannot be empty")
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return nil, shared.NewValidationError("Country must be a 2-letter ISO code")
	}
	if !currency.IsValid() {
		return nil, shared.NewValidationError("Unsupported currency")
	}

	return &Quotation{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Number:             number,
		CompanyProfileID:   companyProfileID,
		ClientID:           clientID,
		Country:            country,
		Currency:           currency,
		Discount:           decimal.Zero,
		TaxRate:            decimal.Zero,
		Subtotal:           decimal.Zero,
		Tax:                decimal.Zero,
		Total:              decimal.Zero,
		Status:             StatusDraft,
		Items:              make([]Item, 0),
	}, nil
}

// AddItem adds a new line item and recomputes the totals.
// Only allowed in draft status.
func (q *Quotation) AddItem(description string, quantity, unitPrice, discountPercent decimal.Decimal, masterItemID *uuid.UUID) (*Item, error) {
	if q.Status != StatusDraft {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot add items to a non-draft quotation")
	}
	if err := validateItemInputs(description, quantity, unitPrice, discountPercent); err != nil {
		return nil, err
	}

	now := time.Now()
	item := Item{
		ID:              uuid.New(),
		QuotationID:     q.ID,
		MasterItemID:    masterItemID,
		Description:     strings.TrimSpace(description),
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		Amount:          ItemAmount(quantity, unitPrice, discountPercent),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	q.Items = append(q.Items, item)
	q.recalculate()
	q.Touch()

	return &q.Items[len(q.Items)-1], nil
}

// UpdateItem applies a patch to an existing item, recomputing totals only
// when a field feeding the derived amount changed
func (q *Quotation) UpdateItem(itemID uuid.UUID, patch ItemPatch) error {
	if q.Status != StatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot update items on a non-draft quotation")
	}

	for idx := range q.Items {
		if q.Items[idx].ID != itemID {
			continue
		}
		item := &q.Items[idx]

		description := item.Description
		quantity := item.Quantity
		unitPrice := item.UnitPrice
		discount := item.DiscountPercent
		if patch.Description != nil {
			description = *patch.Description
		}
		if patch.Quantity != nil {
			quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			unitPrice = *patch.UnitPrice
		}
		if patch.DiscountPercent != nil {
			discount = *patch.DiscountPercent
		}
		if err := validateItemInputs(description, quantity, unitPrice, discount); err != nil {
			return err
		}

		item.Description = strings.TrimSpace(description)
		item.Quantity = quantity
		item.UnitPrice = unitPrice
		item.DiscountPercent = discount
		item.UpdatedAt = time.Now()

		if patch.AffectsAmount() {
			item.Amount = ItemAmount(quantity, unitPrice, discount)
			q.recalculate()
		}
		q.Touch()
		return nil
	}

	return shared.NewDomainError(shared.CodeNotFound, "Quotation item not found")
}

// RemoveItem removes a line item and recomputes the totals
func (q *Quotation) RemoveItem(itemID uuid.UUID) error {
	if q.Status != StatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot remove items from a non-draft quotation")
	}

	for idx, item := range q.Items {
		if item.ID == itemID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			q.recalculate()
			q.Touch()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Quotation item not found")
}

// ApplyDiscount sets the document-level absolute discount and recomputes
func (q *Quotation) ApplyDiscount(discount decimal.Decimal) error {
	if q.Status != StatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot apply discount to a non-draft quotation")
	}
	if discount.IsNegative() {
		return shared.NewValidationError("Discount cannot be negative")
	}
	if discount.GreaterThan(q.Subtotal) {
		return shared.NewValidationError("Discount cannot exceed subtotal")
	}

	q.Discount = discount
	q.recalculate()
	q.Touch()

	return nil
}

// SetTaxRate stores the resolved tax percentage and recomputes the totals
func (q *Quotation) SetTaxRate(rate decimal.Decimal) {
	q.TaxRate = rate
	q.recalculate()
	q.Touch()
}

func (q *Quotation) recalculate() {
	sum := decimal.Zero
	for _, item := range q.Items {
		sum = sum.Add(item.Amount)
	}
	q.Subtotal = valueobject.Round2(sum)

	// Removing or shrinking items can leave an earlier absolute discount
	// above the new subtotal; cap it so the totals never go negative.
	if q.Discount.GreaterThan(q.Subtotal) {
		q.Discount = q.Subtotal
	}

	discounted := q.Subtotal.Sub(q.Discount)
	q.Tax = valueobject.Round2(discounted.Mul(q.TaxRate).Div(hundred))
	q.Total = discounted.Add(q.Tax)
}

// SetNote sets the free-text note
func (q *Quotation) SetNote(note string) {
	q.Note = note
	q.Touch()
}

// SetValidUntil sets the expiry date shown on the document
func (q *Quotation) SetValidUntil(until time.Time) {
	q.ValidUntil = &until
	q.Touch()
}

// TransitionTo moves the quotation to the target status
func (q *Quotation) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError("Unknown quotation status")
	}
	if !q.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot move quotation from %s to %s", q.Status, target))
	}

	now := time.Now()
	switch target {
	case StatusSent:
		q.SentAt = &now
	case StatusAccepted:
		q.AcceptedAt = &now
	}
	q.Status = target
	q.Touch()

	return nil
}

// MarkConverted records the invoice created from this quotation.
// Only an accepted quotation can be converted, and only once.
func (q *Quotation) MarkConverted(invoiceID uuid.UUID) error {
	if q.Status != StatusAccepted {
		return shared.NewDomainError(shared.CodeInvalidState, "Only an accepted quotation can be converted to an invoice")
	}
	if q.ConvertedInvoice != nil {
		return shared.NewDomainError(shared.CodeInvalidState, "Quotation has already been converted")
	}
	q.ConvertedInvoice = &invoiceID
	q.Touch()
	return nil
}
