package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusSent || target == InvoiceStatusCancelled
	case InvoiceStatusSent:
		return target == InvoiceStatusPaid || target == InvoiceStatusOverdue || target == InvoiceStatusCancelled
	case InvoiceStatusOverdue:
		return target == InvoiceStatusPaid || target == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Item represents a line item on an invoice. Amount is derived from the
// other three numeric fields and is never accepted from callers.
type Item struct {
	ID              uuid.UUID
	InvoiceID       uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal // 0-100
	Amount          decimal.Decimal // derived: round2(qty * price * (1 - discount/100))
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var hundred = decimal.NewFromInt(100)

// ItemAmount computes a line amount: quantity * unitPrice * (1 - discount/100),
// rounded half-up to 2 decimal places at this single point.
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

func newItem(invoiceID uuid.UUID, description string, quantity, unitPrice, discountPercent decimal.Decimal) (*Item, error) {
	if err := validateItemInputs(description, quantity, unitPrice, discountPercent); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Item{
		ID:              uuid.New(),
		InvoiceID:       invoiceID,
		Description:     strings.TrimSpace(description),
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		Amount:          ItemAmount(quantity, unitPrice, discountPercent),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ItemPatch enumerates the updatable item fields; nil means "leave as is".
// Typed presence is what decides whether a recompute is due.
type ItemPatch struct {
	Description     *string
	Quantity        *decimal.Decimal
	UnitPrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
}

// AffectsAmount reports whether applying the patch changes the derived
// amount and therefore the parent document's totals
func (p ItemPatch) AffectsAmount() bool {
	return p.Quantity != nil || p.UnitPrice != nil || p.DiscountPercent != nil
}

// Invoice is the aggregate root for an invoice and its line items.
// Subtotal, Tax and Total are derived fields owned by this aggregate:
// nothing outside recalculate writes them, and repositories persist them
// only as part of saving the whole aggregate.
type Invoice struct {
	shared.OwnedAggregateRoot
	Number           string
	CompanyProfileID uuid.UUID
	ClientID         uuid.UUID
	Country          string
	Currency         valueobject.Currency
	Discount         decimal.Decimal // absolute currency amount on the document
	TaxRate          decimal.Decimal // resolved percentage, persisted with the totals
	Subtotal         decimal.Decimal // derived
	Tax              decimal.Decimal // derived
	Total            decimal.Decimal // derived
	Status           InvoiceStatus
	Items            []Item
	Note             string
	SentAt           *time.Time
	PaidAt           *time.Time
	CancelledAt      *time.Time
}

// NewInvoice creates a new draft invoice with zero totals
func NewInvoice(userID uuid.UUID, number string, companyProfileID, clientID uuid.UUID, country string, currency valueobject.Currency) (*Invoice, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if number == "" {
		return nil, shared.NewValidationError("Invoice number cannot be empty")
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

	return &Invoice{
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
		Status:             InvoiceStatusDraft,
		Items:              make([]Item, 0),
	}, nil
}

// AddItem adds a new line item and recomputes the totals.
// Only allowed in draft status.
func (inv *Invoice) AddItem(description string, quantity, unitPrice, discountPercent decimal.Decimal) (*Item, error) {
	if inv.Status != InvoiceStatusDraft {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Cannot add items to a non-draft invoice")
	}

	item, err := newItem(inv.ID, description, quantity, unitPrice, discountPercent)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculate()
	inv.Touch()

	return item, nil
}

// UpdateItem applies a patch to an existing item. The totals are recomputed
// only when a field feeding the derived amount actually changed.
func (inv *Invoice) UpdateItem(itemID uuid.UUID, patch ItemPatch) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot update items on a non-draft invoice")
	}

	for idx := range inv.Items {
		if inv.Items[idx].ID != itemID {
			continue
		}
		item := &inv.Items[idx]

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
			inv.recalculate()
		}
		inv.Touch()
		return nil
	}

	return shared.NewDomainError(shared.CodeNotFound, "Invoice item not found")
}

// RemoveItem removes a line item and recomputes the totals
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot remove items from a non-draft invoice")
	}

	for idx, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
			inv.recalculate()
			inv.Touch()
			return nil
		}
	}

	return shared.NewDomainError(shared.CodeNotFound, "Invoice item not found")
}

// FindItem returns the item with the given ID, or nil
func (inv *Invoice) FindItem(itemID uuid.UUID) *Item {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}

// ApplyDiscount sets the document-level discount, an absolute currency
// amount (distinct from the per-item percentage), and recomputes.
func (inv *Invoice) ApplyDiscount(discount decimal.Decimal) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot apply discount to a non-draft invoice")
	}
	if discount.IsNegative() {
		return shared.NewValidationError("Discount cannot be negative")
	}
	if discount.GreaterThan(inv.Subtotal) {
		return shared.NewValidationError("Discount cannot exceed subtotal")
	}

	inv.Discount = discount
	inv.recalculate()
	inv.Touch()

	return nil
}

// SetTaxRate stores the resolved tax percentage and recomputes the totals.
// The rate is persisted alongside the totals so past documents do not
// drift when the tax table changes.
func (inv *Invoice) SetTaxRate(rate decimal.Decimal) {
	inv.TaxRate = rate
	inv.recalculate()
	inv.Touch()
}

// recalculate recomputes the derived totals from the line items:
// subtotal is the rounded sum of item amounts, the document discount comes
// off as an absolute amount, and tax applies to the discounted subtotal.
// Zero items legitimately yield all-zero totals.
func (inv *Invoice) recalculate() {
	sum := decimal.Zero
	for _, item := range inv.Items {
		sum = sum.Add(item.Amount)
	}
	inv.Subtotal = valueobject.Round2(sum)

	// Removing or shrinking items can leave an earlier absolute discount
	// above the new subtotal; cap it so the totals never go negative.
	if inv.Discount.GreaterThan(inv.Subtotal) {
		inv.Discount = inv.Subtotal
	}

	discounted := inv.Subtotal.Sub(inv.Discount)
	inv.Tax = valueobject.Round2(discounted.Mul(inv.TaxRate).Div(hundred))
	inv.Total = discounted.Add(inv.Tax)
}

// SetNote sets the free-text note
func (inv *Invoice) SetNote(note string) {
	inv.Note = note
	inv.Touch()
}

// TransitionTo moves the invoice to the target status
func (inv *Invoice) TransitionTo(target InvoiceStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError("Unknown invoice status")
	}
	if !inv.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot move invoice from %s to %s", inv.Status, target))
	}

	now := time.Now()
	switch target {
	case InvoiceStatusSent:
		inv.SentAt = &now
	case InvoiceStatusPaid:
		inv.PaidAt = &now
	case InvoiceStatusCancelled:
		inv.CancelledAt = &now
	}
	inv.Status = target
	inv.Touch()

	return nil
}
