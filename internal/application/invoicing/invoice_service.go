package invoicing

import (
	"context"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService handles invoice business operations. Every mutation runs
// inside a transaction scope: creation locks the user row for the quota
// check-then-increment, item edits lock the invoice row before recomputing
// totals.
type InvoiceService struct {
	scope  TransactionScope
	logger *zap.Logger
	now    func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(scope TransactionScope, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		scope:  scope,
		logger: logger,
		now:    time.Now,
	}
}

// Create creates a new draft invoice. Inside one transaction it locks the
// user row, checks the invoice quota, resolves the issuing profile and the
// client, resolves the tax rate from the profile country, issues the next
// invoice number, and increments the usage counter. A failed quota check
// rolls everything back, so the counter moves only when an invoice row
// exists.
func (s *InvoiceService) Create(ctx context.Context, userID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	var response InvoiceResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		now := s.now()

		user, err := repos.UserRepo().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.CheckInvoiceQuota(now); err != nil {
			return err
		}

		profile, err := s.resolveProfile(ctx, repos, userID, req.CompanyProfileID)
		if err != nil {
			return err
		}

		client, err := repos.ClientRepo().FindByID(ctx, req.ClientID)
		if err != nil {
			return err
		}
		if !client.IsFromCentralRepo && !client.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}

		currency := valueobject.DefaultCurrency
		if req.Currency != "" {
			currency = valueobject.Currency(strings.ToUpper(req.Currency))
		}

		number, err := repos.InvoiceRepo().NextNumber(ctx, userID, now.Year())
		if err != nil {
			return err
		}

		invoice, err := invoicing.NewInvoice(userID, number, profile.ID, client.ID, profile.Country, currency)
		if err != nil {
			return err
		}
		invoice.SetTaxRate(s.resolveTaxRate(ctx, repos, profile.Country))

		for _, item := range req.Items {
			if _, err := invoice.AddItem(item.Description, item.Quantity, item.UnitPrice, item.DiscountPercent); err != nil {
				return err
			}
		}
		if req.Discount != nil {
			if err := invoice.ApplyDiscount(*req.Discount); err != nil {
				return err
			}
		}
		if req.Note != "" {
			invoice.SetNote(req.Note)
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}

		user.RecordInvoiceIssued()
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}

		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("user_id", userID.String()),
		zap.String("number", response.Number))
	return &response, nil
}

// resolveProfile picks the issuing company profile: the requested one when
// given, otherwise the user's default.
func (s *InvoiceService) resolveProfile(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, profileID *uuid.UUID) (*company.Profile, error) {
	if profileID != nil {
		return repos.ProfileRepo().FindByIDForUser(ctx, userID, *profileID)
	}
	return repos.ProfileRepo().FindDefaultForUser(ctx, userID)
}

// resolveTaxRate looks up the default rate for the issuing country.
// Countries without a configured rate are taxed at zero.
func (s *InvoiceService) resolveTaxRate(ctx context.Context, repos TransactionalRepositories, country string) decimal.Decimal {
	rate, err := repos.TaxRateRepo().FindDefaultForCountry(ctx, country)
	if err != nil {
		return decimal.Zero
	}
	return rate.Rate
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUser(ctx, userID, invoiceID)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves invoices for a user with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]InvoiceListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}

	var (
		items []InvoiceListItemResponse
		total int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoices, err := repos.InvoiceRepo().FindAllForUser(ctx, userID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.InvoiceRepo().CountForUser(ctx, userID, domainFilter)
		if err != nil {
			return err
		}
		items = make([]InvoiceListItemResponse, 0, len(invoices))
		for _, inv := range invoices {
			items = append(items, ToInvoiceListItemResponse(inv))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// AddItem adds a line item to a draft invoice and recomputes the totals
func (s *InvoiceService) AddItem(ctx context.Context, userID, invoiceID uuid.UUID, req CreateItemInput) (*InvoiceResponse, error) {
	return s.mutate(ctx, userID, invoiceID, func(invoice *invoicing.Invoice) error {
		_, err := invoice.AddItem(req.Description, req.Quantity, req.UnitPrice, req.DiscountPercent)
		return err
	})
}

// UpdateItem updates a line item on a draft invoice. Totals are recomputed
// only when an amount-bearing field changed.
func (s *InvoiceService) UpdateItem(ctx context.Context, userID, invoiceID, itemID uuid.UUID, req UpdateItemRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, userID, invoiceID, func(invoice *invoicing.Invoice) error {
		return invoice.UpdateItem(itemID, invoicing.ItemPatch{
			Description:     req.Description,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: req.DiscountPercent,
		})
	})
}

// RemoveItem removes a line item from a draft invoice and recomputes the totals
func (s *InvoiceService) RemoveItem(ctx context.Context, userID, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, userID, invoiceID, func(invoice *invoicing.Invoice) error {
		return invoice.RemoveItem(itemID)
	})
}

// ApplyDiscount sets the document-level discount on a draft invoice
func (s *InvoiceService) ApplyDiscount(ctx context.Context, userID, invoiceID uuid.UUID, req ApplyDiscountRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, userID, invoiceID, func(invoice *invoicing.Invoice) error {
		return invoice.ApplyDiscount(req.Discount)
	})
}

// UpdateNote sets the free-text note
func (s *InvoiceService) UpdateNote(ctx context.Context, userID, invoiceID uuid.UUID, req UpdateNoteRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, userID, invoiceID, func(invoice *invoicing.Invoice) error {
		invoice.SetNote(req.Note)
		return nil
	})
}

// Send transitions the invoice to sent
func (s *InvoiceService) Send(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, userID, invoiceID, invoicing.InvoiceStatusSent)
}

// MarkPaid transitions the invoice to paid
func (s *InvoiceService) MarkPaid(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, userID, invoiceID, invoicing.InvoiceStatusPaid)
}

// MarkOverdue transitions the invoice to overdue
func (s *InvoiceService) MarkOverdue(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, userID, invoiceID, invoicing.InvoiceStatusOverdue)
}

// Cancel transitions the invoice to cancelled
func (s *InvoiceService) Cancel(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, userID, invoiceID, invoicing.InvoiceStatusCancelled)
}

// Delete removes a draft invoice. Issued documents are cancelled, never
// deleted; the usage counter does not move back.
func (s *InvoiceService) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !invoice.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}
		if invoice.Status != invoicing.InvoiceStatusDraft {
			return shared.NewDomainError(shared.CodeInvalidState, "Only draft invoices can be deleted")
		}
		return repos.InvoiceRepo().Delete(ctx, invoice.ID)
	})
}

// mutate loads the invoice under a row lock, checks ownership, applies fn
// and saves the whole aggregate.
func (s *InvoiceService) mutate(ctx context.Context, userID, invoiceID uuid.UUID, fn func(*invoicing.Invoice) error) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !invoice.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}
		if err := fn(invoice); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *InvoiceService) transition(ctx context.Context, userID, invoiceID uuid.UUID, target invoicing.InvoiceStatus) (*InvoiceResponse, error) {
	return s.mutate(ctx, userID, invoiceID, func(invoice *invoicing.Invoice) error {
		return invoice.TransitionTo(target)
	})
}
