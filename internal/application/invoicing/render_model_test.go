package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTemplateRepository is a mock implementation of catalog.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindByCode(ctx context.Context, code string) (*catalog.Template, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindByKind(ctx context.Context, kind catalog.TemplateKind, includePremium bool) ([]catalog.Template, error) {
	args := m.Called(ctx, kind, includePremium)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Template), args.Error(1)
}

func (m *MockTemplateRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *catalog.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func newRenderService(t *testing.T) (*RenderModelService, serviceMocks, *MockTemplateRepository) {
	t.Helper()
	mocks := serviceMocks{
		invoiceRepo: new(MockInvoiceRepository),
		userRepo:    new(MockUserRepository),
		profileRepo: new(MockProfileRepository),
		clientRepo:  new(MockClientRepository),
		taxRateRepo: new(MockTaxRateRepository),
	}
	templateRepo := new(MockTemplateRepository)
	scope := NewNoOpTransactionScope(mocks.invoiceRepo, mocks.userRepo, mocks.profileRepo, mocks.clientRepo, mocks.taxRateRepo)
	return NewRenderModelService(scope, templateRepo), mocks, templateRepo
}

func TestRenderModelResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles seller, buyer and stored totals", func(t *testing.T) {
		service, mocks, _ := newRenderService(t)

		userID := uuid.New()
		profile := newTestProfile(t, userID)
		profile.Street = "Hauptstrasse 1"
		profile.IBAN = "DE89370400440532013000"
		profile.BankName = "Commerzbank"
		client := newTestClient(t, userID)
		client.City = "Berlin"

		invoice, err := invoicing.NewInvoice(userID, "INV-2026-0007", profile.ID, client.ID, "DE", valueobject.EUR)
		require.NoError(t, err)
		invoice.SetTaxRate(decimal.NewFromInt(19))
		_, err = invoice.AddItem("Work", decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)

		mocks.invoiceRepo.On("FindByIDForUser", ctx, userID, invoice.ID).Return(invoice, nil)
		mocks.profileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
		mocks.clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)

		model, err := service.Resolve(ctx, userID, invoice.ID, "")
		require.NoError(t, err)

		assert.Equal(t, "INV-2026-0007", model.Number)
		assert.Empty(t, model.TemplateCode)
		assert.Equal(t, profile.Name, model.Seller.Name)
		assert.Equal(t, "Hauptstrasse 1", model.Seller.Street)
		assert.Equal(t, client.Name, model.Buyer.Name)
		assert.Equal(t, "Berlin", model.Buyer.City)
		assert.Equal(t, "Commerzbank", model.Bank.BankName)
		assert.Equal(t, "DE89370400440532013000", model.Bank.IBAN)
		assert.True(t, model.Subtotal.Equal(invoice.Subtotal))
		assert.True(t, model.Tax.Equal(invoice.Tax))
		assert.True(t, model.Total.Equal(invoice.Total))
		require.Len(t, model.Items, 1)
		assert.Equal(t, invoice.CreatedAt, model.IssuedAt)
	})

	t.Run("sent invoices use the send time as issue date", func(t *testing.T) {
		service, mocks, _ := newRenderService(t)

		userID := uuid.New()
		profile := newTestProfile(t, userID)
		client := newTestClient(t, userID)

		invoice, err := invoicing.NewInvoice(userID, "INV-2026-0008", profile.ID, client.ID, "DE", valueobject.EUR)
		require.NoError(t, err)
		sentAt := time.Now().Add(-24 * time.Hour)
		invoice.SentAt = &sentAt

		mocks.invoiceRepo.On("FindByIDForUser", ctx, userID, invoice.ID).Return(invoice, nil)
		mocks.profileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
		mocks.clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)

		model, err := service.Resolve(ctx, userID, invoice.ID, "")
		require.NoError(t, err)
		assert.Equal(t, sentAt, model.IssuedAt)
	})

	t.Run("resolves the requested template by code", func(t *testing.T) {
		service, mocks, templateRepo := newRenderService(t)

		userID := uuid.New()
		profile := newTestProfile(t, userID)
		client := newTestClient(t, userID)
		invoice, err := invoicing.NewInvoice(userID, "INV-2026-0009", profile.ID, client.ID, "DE", valueobject.EUR)
		require.NoError(t, err)

		template, err := catalog.NewTemplate(catalog.TemplateKindInvoice, "invoice-classic", "Classic", false)
		require.NoError(t, err)
		templateRepo.On("FindByCode", ctx, "invoice-classic").Return(template, nil)

		mocks.invoiceRepo.On("FindByIDForUser", ctx, userID, invoice.ID).Return(invoice, nil)
		mocks.profileRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
		mocks.clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)

		model, err := service.Resolve(ctx, userID, invoice.ID, "invoice-classic")
		require.NoError(t, err)
		assert.Equal(t, "invoice-classic", model.TemplateCode)
	})

	t.Run("rejects a quotation template", func(t *testing.T) {
		service, _, templateRepo := newRenderService(t)

		template, err := catalog.NewTemplate(catalog.TemplateKindQuotation, "quotation-classic", "Classic", false)
		require.NoError(t, err)
		templateRepo.On("FindByCode", ctx, "quotation-classic").Return(template, nil)

		_, err = service.Resolve(ctx, uuid.New(), uuid.New(), "quotation-classic")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})

	t.Run("propagates invoice not found", func(t *testing.T) {
		service, mocks, _ := newRenderService(t)

		userID := uuid.New()
		invoiceID := uuid.New()
		mocks.invoiceRepo.On("FindByIDForUser", ctx, userID, invoiceID).Return(nil, shared.ErrNotFound)

		_, err := service.Resolve(ctx, userID, invoiceID, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
