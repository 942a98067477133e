package quotation

import (
	"context"
	"testing"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/company"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/quotation"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockQuotationRepository is a mock implementation of QuotationRepository
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*quotation.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotation.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]quotation.Quotation, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quotation.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuotationRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuotationRepository) CountByCompanyProfile(ctx context.Context, companyProfileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyProfileID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuotationRepository) NextNumber(ctx context.Context, userID uuid.UUID, year int) (string, error) {
	args := m.Called(ctx, userID, year)
	return args.String(0), args.Error(1)
}

func (m *MockQuotationRepository) Save(ctx context.Context, q *quotation.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByCompanyProfile(ctx context.Context, companyProfileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyProfileID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context, userID uuid.UUID, year int) (string, error) {
	args := m.Called(ctx, userID, year)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*company.Profile, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]company.Profile, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindDefaultForUser(ctx context.Context, userID uuid.UUID) (*company.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAllForUserForUpdate(ctx context.Context, userID uuid.UUID) ([]company.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Profile), args.Error(1)
}

func (m *MockProfileRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *company.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) SaveAll(ctx context.Context, profiles []*company.Profile) error {
	args := m.Called(ctx, profiles)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaxRateRepository is a mock implementation of TaxRateRepository
type MockTaxRateRepository struct {
	mock.Mock
}

func (m *MockTaxRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.TaxRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) FindDefaultForCountry(ctx context.Context, country string) (*catalog.TaxRate, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.TaxRate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) ExistsDefaultForCountry(ctx context.Context, country string) (bool, error) {
	args := m.Called(ctx, country)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaxRateRepository) Save(ctx context.Context, rate *catalog.TaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockMasterItemRepository is a mock implementation of MasterItemRepository
type MockMasterItemRepository struct {
	mock.Mock
}

func (m *MockMasterItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MasterItem), args.Error(1)
}

func (m *MockMasterItemRepository) FindByCode(ctx context.Context, code string) (*catalog.MasterItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MasterItem), args.Error(1)
}

func (m *MockMasterItemRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.MasterItem, error) {
	args := m.Called(ctx, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.MasterItem), args.Error(1)
}

func (m *MockMasterItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.MasterItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.MasterItem), args.Error(1)
}

func (m *MockMasterItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockMasterItemRepository) Save(ctx context.Context, item *catalog.MasterItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockMaterialUsageRepository is a mock implementation of MaterialUsageRepository
type MockMaterialUsageRepository struct {
	mock.Mock
}

func (m *MockMaterialUsageRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]billing.MaterialUsage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.MaterialUsage), args.Error(1)
}

func (m *MockMaterialUsageRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaterialUsageRepository) Save(ctx context.Context, usage *billing.MaterialUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

type serviceMocks struct {
	quotationRepo  *MockQuotationRepository
	invoiceRepo    *MockInvoiceRepository
	userRepo       *MockUserRepository
	profileRepo    *MockProfileRepository
	clientRepo     *MockClientRepository
	taxRateRepo    *MockTaxRateRepository
	masterItemRepo *MockMasterItemRepository
	usageRepo      *MockMaterialUsageRepository
}

func newService(t *testing.T) (*QuotationService, serviceMocks) {
	t.Helper()
	mocks := serviceMocks{
		quotationRepo:  new(MockQuotationRepository),
		invoiceRepo:    new(MockInvoiceRepository),
		userRepo:       new(MockUserRepository),
		profileRepo:    new(MockProfileRepository),
		clientRepo:     new(MockClientRepository),
		taxRateRepo:    new(MockTaxRateRepository),
		masterItemRepo: new(MockMasterItemRepository),
		usageRepo:      new(MockMaterialUsageRepository),
	}
	scope := NewNoOpTransactionScope(
		mocks.quotationRepo, mocks.invoiceRepo, mocks.userRepo, mocks.profileRepo,
		mocks.clientRepo, mocks.taxRateRepo, mocks.masterItemRepo, mocks.usageRepo,
	)
	return NewQuotationService(scope, zap.NewNop()), mocks
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("user@example.com", "secret-password", "Test User", identity.PlanFree, 5, 5)
	require.NoError(t, err)
	return user
}

func TestQuotationServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("records material usage for catalog-linked items", func(t *testing.T) {
		svc, mocks := newService(t)
		user := newTestUser(t)
		profile, err := company.NewProfile(user.ID, "Acme GmbH", "DE")
		require.NoError(t, err)
		client, err := partner.NewClient(user.ID, "Client AG", "DE")
		require.NoError(t, err)
		master, err := catalog.NewMasterItem("materials", "CBL-CAT6", "Cat6 cable", "m", decimal.NewFromFloat(1.20))
		require.NoError(t, err)

		mocks.userRepo.On("FindByIDForUpdate", ctx, user.ID).Return(user, nil)
		mocks.profileRepo.On("FindDefaultForUser", ctx, user.ID).Return(profile, nil)
		mocks.clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		mocks.taxRateRepo.On("FindDefaultForCountry", ctx, "DE").Return(nil, shared.ErrNotFound)
		mocks.quotationRepo.On("NextNumber", ctx, user.ID, mock.Anything).Return("QUO-2026-0001", nil)
		mocks.masterItemRepo.On("FindByID", ctx, master.ID).Return(master, nil)
		mocks.usageRepo.On("Save", ctx, mock.Anything).Return(nil)
		mocks.quotationRepo.On("Save", ctx, mock.Anything).Return(nil)
		mocks.userRepo.On("Save", ctx, user).Return(nil)

		resp, err := svc.Create(ctx, user.ID, CreateQuotationRequest{
			ClientID: client.ID,
			Items: []CreateItemInput{
				{MasterItemID: &master.ID, Description: "Cat6 cable", Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromFloat(1.20)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "QUO-2026-0001", resp.Number)
		assert.Equal(t, 1, user.QuotesUsed)
		assert.Equal(t, 1, user.MaterialRecordsUsed)
		mocks.usageRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("denies creation when quote quota is exhausted", func(t *testing.T) {
		svc, mocks := newService(t)
		user, err := identity.NewUser("user@example.com", "secret-password", "Test User", identity.PlanFree, 5, 1)
		require.NoError(t, err)
		user.RecordQuoteIssued()

		mocks.userRepo.On("FindByIDForUpdate", ctx, user.ID).Return(user, nil)

		_, err = svc.Create(ctx, user.ID, CreateQuotationRequest{ClientID: uuid.New()})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeQuotaExceeded))
		mocks.quotationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects inactive catalog items", func(t *testing.T) {
		svc, mocks := newService(t)
		user := newTestUser(t)
		profile, err := company.NewProfile(user.ID, "Acme GmbH", "DE")
		require.NoError(t, err)
		client, err := partner.NewClient(user.ID, "Client AG", "DE")
		require.NoError(t, err)
		master, err := catalog.NewMasterItem("materials", "OLD", "Legacy part", "pc", decimal.NewFromInt(5))
		require.NoError(t, err)
		master.IsActive = false

		mocks.userRepo.On("FindByIDForUpdate", ctx, user.ID).Return(user, nil)
		mocks.profileRepo.On("FindDefaultForUser", ctx, user.ID).Return(profile, nil)
		mocks.clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		mocks.taxRateRepo.On("FindDefaultForCountry", ctx, "DE").Return(nil, shared.ErrNotFound)
		mocks.quotationRepo.On("NextNumber", ctx, user.ID, mock.Anything).Return("QUO-2026-0001", nil)
		mocks.masterItemRepo.On("FindByID", ctx, master.ID).Return(master, nil)

		_, err = svc.Create(ctx, user.ID, CreateQuotationRequest{
			ClientID: client.ID,
			Items: []CreateItemInput{
				{MasterItemID: &master.ID, Description: "Legacy part", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
		assert.Equal(t, 0, user.MaterialRecordsUsed)
	})
}

func TestQuotationServiceConvertToInvoice(t *testing.T) {
	ctx := context.Background()

	accepted := func(t *testing.T, userID uuid.UUID) *quotation.Quotation {
		t.Helper()
		quote, err := quotation.NewQuotation(userID, "QUO-2026-0001", uuid.New(), uuid.New(), "DE", "EUR")
		require.NoError(t, err)
		quote.SetTaxRate(decimal.NewFromInt(19))
		_, err = quote.AddItem("Consulting", decimal.NewFromInt(2), decimal.NewFromFloat(3.50), decimal.Zero, nil)
		require.NoError(t, err)
		require.NoError(t, quote.TransitionTo(quotation.StatusSent))
		require.NoError(t, quote.TransitionTo(quotation.StatusAccepted))
		return quote
	}

	t.Run("creates invoice and marks quotation converted", func(t *testing.T) {
		svc, mocks := newService(t)
		user := newTestUser(t)
		quote := accepted(t, user.ID)

		var savedInvoice *invoicing.Invoice
		mocks.quotationRepo.On("FindByIDForUpdate", ctx, quote.ID).Return(quote, nil)
		mocks.userRepo.On("FindByIDForUpdate", ctx, user.ID).Return(user, nil)
		mocks.invoiceRepo.On("NextNumber", ctx, user.ID, mock.Anything).Return("INV-2026-0007", nil)
		mocks.invoiceRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			savedInvoice = args.Get(1).(*invoicing.Invoice)
		}).Return(nil)
		mocks.quotationRepo.On("Save", ctx, quote).Return(nil)
		mocks.userRepo.On("Save", ctx, user).Return(nil)

		resp, invoiceID, err := svc.ConvertToInvoice(ctx, user.ID, quote.ID)
		require.NoError(t, err)
		require.NotNil(t, savedInvoice)
		assert.Equal(t, savedInvoice.ID, invoiceID)
		assert.Equal(t, invoiceID, *resp.ConvertedInvoice)
		assert.True(t, savedInvoice.Total.Equal(quote.Total), "converted invoice keeps the quoted total")
		assert.Equal(t, 1, user.InvoicesUsed)
	})

	t.Run("refuses to convert twice", func(t *testing.T) {
		svc, mocks := newService(t)
		user := newTestUser(t)
		quote := accepted(t, user.ID)
		require.NoError(t, quote.MarkConverted(uuid.New()))

		mocks.quotationRepo.On("FindByIDForUpdate", ctx, quote.ID).Return(quote, nil)

		_, _, err := svc.ConvertToInvoice(ctx, user.ID, quote.ID)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
		mocks.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("conversion respects the invoice quota", func(t *testing.T) {
		svc, mocks := newService(t)
		user, err := identity.NewUser("user@example.com", "secret-password", "Test User", identity.PlanFree, 1, 5)
		require.NoError(t, err)
		user.RecordInvoiceIssued()
		quote := accepted(t, user.ID)

		mocks.quotationRepo.On("FindByIDForUpdate", ctx, quote.ID).Return(quote, nil)
		mocks.userRepo.On("FindByIDForUpdate", ctx, user.ID).Return(user, nil)

		_, _, err = svc.ConvertToInvoice(ctx, user.ID, quote.ID)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeQuotaExceeded))
		assert.Nil(t, quote.ConvertedInvoice)
	})
}
