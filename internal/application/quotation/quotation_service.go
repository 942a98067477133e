package quotation

import (
	"context"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/quotation"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuotationService handles quotation business operations. It follows the
// same transactional discipline as invoices and additionally feeds the
// material usage ledger when curated catalog items land on a document.
type QuotationService struct {
	scope  TransactionScope
	logger *zap.Logger
	now    func() time.Time
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(scope TransactionScope, logger *zap.Logger) *QuotationService {
	return &QuotationService{
		scope:  scope,
		logger: logger,
		now:    time.Now,
	}
}

// Create creates a new draft quotation. The quote quota is checked under a
// lock on the user row and the counter increments in the same transaction
// that creates the quotation row.
func (s *QuotationService) Create(ctx context.Context, userID uuid.UUID, req CreateQuotationRequest) (*QuotationResponse, error) {
	var response QuotationResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		now := s.now()

		user, err := repos.UserRepo().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.CheckQuoteQuota(now); err != nil {
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

		number, err := repos.QuotationRepo().NextNumber(ctx, userID, now.Year())
		if err != nil {
			return err
		}

		quote, err := quotation.NewQuotation(userID, number, profile.ID, client.ID, profile.Country, currency)
		if err != nil {
			return err
		}
		quote.SetTaxRate(s.resolveTaxRate(ctx, repos, profile.Country))

		for _, item := range req.Items {
			if err := s.addItem(ctx, repos, user, quote, item, now); err != nil {
				return err
			}
		}
		if req.Discount != nil {
			if err := quote.ApplyDiscount(*req.Discount); err != nil {
				return err
			}
		}
		if req.Note != "" {
			quote.SetNote(req.Note)
		}
		if req.ValidUntil != nil {
			quote.SetValidUntil(*req.ValidUntil)
		}

		if err := repos.QuotationRepo().Save(ctx, quote); err != nil {
			return err
		}

		user.RecordQuoteIssued()
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}

		response = ToQuotationResponse(quote)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quotation created",
		zap.String("user_id", userID.String()),
		zap.String("number", response.Number))
	return &response, nil
}

// addItem puts one line on the quotation. Lines taken from the shared
// catalog are verified against it and produce an append-only usage record
// plus a counter bump on the user row.
func (s *QuotationService) addItem(ctx context.Context, repos TransactionalRepositories, user *identity.User, quote *quotation.Quotation, input CreateItemInput, now time.Time) error {
	if input.MasterItemID != nil {
		master, err := repos.MasterItemRepo().FindByID(ctx, *input.MasterItemID)
		if err != nil {
			return err
		}
		if !master.IsActive {
			return shared.NewValidationError("Catalog item is no longer active")
		}
	}

	if _, err := quote.AddItem(input.Description, input.Quantity, input.UnitPrice, input.DiscountPercent, input.MasterItemID); err != nil {
		return err
	}

	if input.MasterItemID != nil {
		usage, err := billing.NewMaterialUsage(user.ID, *input.MasterItemID, &quote.ID, nil, now)
		if err != nil {
			return err
		}
		if err := repos.UsageRepo().Save(ctx, usage); err != nil {
			return err
		}
		user.RecordMaterialUsage()
	}
	return nil
}

func (s *QuotationService) resolveProfile(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, profileID *uuid.UUID) (*company.Profile, error) {
	if profileID != nil {
		return repos.ProfileRepo().FindByIDForUser(ctx, userID, *profileID)
	}
	return repos.ProfileRepo().FindDefaultForUser(ctx, userID)
}

func (s *QuotationService) resolveTaxRate(ctx context.Context, repos TransactionalRepositories, country string) decimal.Decimal {
	rate, err := repos.TaxRateRepo().FindDefaultForCountry(ctx, country)
	if err != nil {
		return decimal.Zero
	}
	return rate.Rate
}

// GetByID retrieves a quotation by ID
func (s *QuotationService) GetByID(ctx context.Context, userID, quotationID uuid.UUID) (*QuotationResponse, error) {
	var response QuotationResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.QuotationRepo().FindByIDForUser(ctx, userID, quotationID)
		if err != nil {
			return err
		}
		response = ToQuotationResponse(quote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves quotations for a user with filtering and pagination
func (s *QuotationService) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]QuotationListItemResponse, int64, error) {
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
		items []QuotationListItemResponse
		total int64
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quotes, err := repos.QuotationRepo().FindAllForUser(ctx, userID, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.QuotationRepo().CountForUser(ctx, userID, domainFilter)
		if err != nil {
			return err
		}
		items = make([]QuotationListItemResponse, 0, len(quotes))
		for _, q := range quotes {
			items = append(items, ToQuotationListItemResponse(q))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// AddItem adds a line item to a draft quotation and recomputes the totals
func (s *QuotationService) AddItem(ctx context.Context, userID, quotationID uuid.UUID, req CreateItemInput) (*QuotationResponse, error) {
	var response QuotationResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.QuotationRepo().FindByIDForUpdate(ctx, quotationID)
		if err != nil {
			return err
		}
		if !quote.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}

		user, err := repos.UserRepo().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.addItem(ctx, repos, user, quote, req, s.now()); err != nil {
			return err
		}

		if err := repos.QuotationRepo().Save(ctx, quote); err != nil {
			return err
		}
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}
		response = ToQuotationResponse(quote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// UpdateItem updates a line item on a draft quotation
func (s *QuotationService) UpdateItem(ctx context.Context, userID, quotationID, itemID uuid.UUID, req UpdateItemRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, userID, quotationID, func(quote *quotation.Quotation) error {
		return quote.UpdateItem(itemID, quotation.ItemPatch{
			Description:     req.Description,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: req.DiscountPercent,
		})
	})
}

// RemoveItem removes a line item from a draft quotation
func (s *QuotationService) RemoveItem(ctx context.Context, userID, quotationID, itemID uuid.UUID) (*QuotationResponse, error) {
	return s.mutate(ctx, userID, quotationID, func(quote *quotation.Quotation) error {
		return quote.RemoveItem(itemID)
	})
}

// ApplyDiscount sets the document-level discount on a draft quotation
func (s *QuotationService) ApplyDiscount(ctx context.Context, userID, quotationID uuid.UUID, req ApplyDiscountRequest) (*QuotationResponse, error) {
	return s.mutate(ctx, userID, quotationID, func(quote *quotation.Quotation) error {
		return quote.ApplyDiscount(req.Discount)
	})
}

// Send transitions the quotation to sent
func (s *QuotationService) Send(ctx context.Context, userID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, userID, quotationID, quotation.StatusSent)
}

// Accept transitions the quotation to accepted
func (s *QuotationService) Accept(ctx context.Context, userID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, userID, quotationID, quotation.StatusAccepted)
}

// Decline transitions the quotation to declined
func (s *QuotationService) Decline(ctx context.Context, userID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, userID, quotationID, quotation.StatusDeclined)
}

// Cancel transitions the quotation to cancelled
func (s *QuotationService) Cancel(ctx context.Context, userID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, userID, quotationID, quotation.StatusCancelled)
}

// Delete removes a draft quotation
func (s *QuotationService) Delete(ctx context.Context, userID, quotationID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.QuotationRepo().FindByIDForUpdate(ctx, quotationID)
		if err != nil {
			return err
		}
		if !quote.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}
		if quote.Status != quotation.StatusDraft {
			return shared.NewDomainError(shared.CodeInvalidState, "Only draft quotations can be deleted")
		}
		return repos.QuotationRepo().Delete(ctx, quote.ID)
	})
}

// ConvertToInvoice creates an invoice from an accepted quotation. One
// transaction covers the whole move: the quotation row is locked so the
// conversion happens once, the user row is locked for the invoice quota
// check-then-increment, and the quotation is marked converted only if the
// invoice row was created.
func (s *QuotationService) ConvertToInvoice(ctx context.Context, userID, quotationID uuid.UUID) (*QuotationResponse, uuid.UUID, error) {
	var (
		response  QuotationResponse
		invoiceID uuid.UUID
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		now := s.now()

		quote, err := repos.QuotationRepo().FindByIDForUpdate(ctx, quotationID)
		if err != nil {
			return err
		}
		if !quote.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}
		if quote.Status != quotation.StatusAccepted {
			return shared.NewDomainError(shared.CodeInvalidState, "Only an accepted quotation can be converted to an invoice")
		}
		if quote.ConvertedInvoice != nil {
			return shared.NewDomainError(shared.CodeInvalidState, "Quotation has already been converted")
		}

		user, err := repos.UserRepo().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.CheckInvoiceQuota(now); err != nil {
			return err
		}

		number, err := repos.InvoiceRepo().NextNumber(ctx, userID, now.Year())
		if err != nil {
			return err
		}

		invoice, err := invoicing.NewInvoice(userID, number, quote.CompanyProfileID, quote.ClientID, quote.Country, quote.Currency)
		if err != nil {
			return err
		}
		invoice.SetTaxRate(quote.TaxRate)
		for _, item := range quote.Items {
			if _, err := invoice.AddItem(item.Description, item.Quantity, item.UnitPrice, item.DiscountPercent); err != nil {
				return err
			}
		}
		if !quote.Discount.IsZero() {
			if err := invoice.ApplyDiscount(quote.Discount); err != nil {
				return err
			}
		}
		if quote.Note != "" {
			invoice.SetNote(quote.Note)
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		if err := quote.MarkConverted(invoice.ID); err != nil {
			return err
		}
		if err := repos.QuotationRepo().Save(ctx, quote); err != nil {
			return err
		}

		user.RecordInvoiceIssued()
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}

		response = ToQuotationResponse(quote)
		invoiceID = invoice.ID
		return nil
	})
	if err != nil {
		return nil, uuid.Nil, err
	}

	s.logger.Info("quotation converted",
		zap.String("user_id", userID.String()),
		zap.String("quotation_id", quotationID.String()),
		zap.String("invoice_id", invoiceID.String()))
	return &response, invoiceID, nil
}

// mutate loads the quotation under a row lock, checks ownership, applies fn
// and saves the whole aggregate.
func (s *QuotationService) mutate(ctx context.Context, userID, quotationID uuid.UUID, fn func(*quotation.Quotation) error) (*QuotationResponse, error) {
	var response QuotationResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		quote, err := repos.QuotationRepo().FindByIDForUpdate(ctx, quotationID)
		if err != nil {
			return err
		}
		if !quote.IsOwnedBy(userID) {
			return shared.ErrNotFound
		}
		if err := fn(quote); err != nil {
			return err
		}
		if err := repos.QuotationRepo().Save(ctx, quote); err != nil {
			return err
		}
		response = ToQuotationResponse(quote)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *QuotationService) transition(ctx context.Context, userID, quotationID uuid.UUID, target quotation.Status) (*QuotationResponse, error) {
	return s.mutate(ctx, userID, quotationID, func(quote *quotation.Quotation) error {
		return quote.TransitionTo(target)
	})
}
