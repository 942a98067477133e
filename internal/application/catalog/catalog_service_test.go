package catalog

import (
	"context"
	"testing"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockMasterItemRepository is a mock implementation of catalog.MasterItemRepository
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

// MockMasterTermRepository is a mock implementation of catalog.MasterTermRepository
type MockMasterTermRepository struct {
	mock.Mock
}

func (m *MockMasterTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterTerm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MasterTerm), args.Error(1)
}

func (m *MockMasterTermRepository) FindByCode(ctx context.Context, code string) (*catalog.MasterTerm, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MasterTerm), args.Error(1)
}

func (m *MockMasterTermRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.MasterTerm, error) {
	args := m.Called(ctx, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.MasterTerm), args.Error(1)
}

func (m *MockMasterTermRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockMasterTermRepository) Save(ctx context.Context, term *catalog.MasterTerm) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

// MockCompanyItemRepository is a mock implementation of catalog.CompanyItemRepository
type MockCompanyItemRepository struct {
	mock.Mock
}

func (m *MockCompanyItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CompanyItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CompanyItem), args.Error(1)
}

func (m *MockCompanyItemRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.CompanyItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CompanyItem), args.Error(1)
}

func (m *MockCompanyItemRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.CompanyItem, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CompanyItem), args.Error(1)
}

func (m *MockCompanyItemRepository) Save(ctx context.Context, item *catalog.CompanyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCompanyItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompanyTermRepository is a mock implementation of catalog.CompanyTermRepository
type MockCompanyTermRepository struct {
	mock.Mock
}

func (m *MockCompanyTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CompanyTerm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CompanyTerm), args.Error(1)
}

func (m *MockCompanyTermRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.CompanyTerm, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CompanyTerm), args.Error(1)
}

func (m *MockCompanyTermRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.CompanyTerm, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CompanyTerm), args.Error(1)
}

func (m *MockCompanyTermRepository) FindByUserAndCategoryForUpdate(ctx context.Context, userID uuid.UUID, category string) ([]catalog.CompanyTerm, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CompanyTerm), args.Error(1)
}

func (m *MockCompanyTermRepository) Save(ctx context.Context, term *catalog.CompanyTerm) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockCompanyTermRepository) SaveAll(ctx context.Context, terms []*catalog.CompanyTerm) error {
	args := m.Called(ctx, terms)
	return args.Error(0)
}

func (m *MockCompanyTermRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

// MockUserReader overrides only the lookup the reference service uses.
type MockUserReader struct {
	mock.Mock
	identity.UserRepository
}

func (m *MockUserReader) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// MockPlanReader overrides only the lookup the reference service uses.
type MockPlanReader struct {
	mock.Mock
	billing.SubscriptionPlanRepository
}

func (m *MockPlanReader) FindByPlanID(ctx context.Context, planID string) (*billing.SubscriptionPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SubscriptionPlan), args.Error(1)
}

func mustMasterItem(t *testing.T, category, code, name, unit, price string) *catalog.MasterItem {
	t.Helper()
	item, err := catalog.NewMasterItem(category, code, name, unit, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func mustTerm(t *testing.T, userID uuid.UUID, category, title string, isDefault bool) *catalog.CompanyTerm {
	t.Helper()
	term, err := catalog.NewCompanyTerm(userID, nil, category, title, "Content of "+title)
	require.NoError(t, err)
	if isDefault {
		term.MarkDefault()
	}
	return term
}

func TestCompanyItemService_Create_PrefillsFromMaster(t *testing.T) {
	itemRepo := new(MockCompanyItemRepository)
	masterRepo := new(MockMasterItemRepository)
	service := NewCompanyItemService(itemRepo, masterRepo, zap.NewNop())

	userID := uuid.New()
	master := mustMasterItem(t, "plumbing", "PIPE-22", "Copper pipe 22mm", "m", "4.50")

	masterRepo.On("FindByID", mock.Anything, master.ID).Return(master, nil)
	itemRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.CompanyItem")).Return(nil)

	resp, err := service.Create(context.Background(), userID, CreateCompanyItemRequest{
		MasterItemID: &master.ID,
		Name:         "Copper pipe (our stock)",
	})

	require.NoError(t, err)
	assert.Equal(t, "Copper pipe (our stock)", resp.Name)
	assert.Equal(t, "plumbing", resp.Category)
	assert.Equal(t, "m", resp.Unit)
	assert.Equal(t, "4.50", resp.Price.String())
	require.NotNil(t, resp.MasterItemID)
	assert.Equal(t, master.ID, *resp.MasterItemID)
}

func TestCompanyItemService_Create_RejectsInactiveMaster(t *testing.T) {
	itemRepo := new(MockCompanyItemRepository)
	masterRepo := new(MockMasterItemRepository)
	service := NewCompanyItemService(itemRepo, masterRepo, zap.NewNop())

	master := mustMasterItem(t, "plumbing", "PIPE-22", "Copper pipe 22mm", "m", "4.50")
	master.IsActive = false
	masterRepo.On("FindByID", mock.Anything, master.ID).Return(master, nil)

	_, err := service.Create(context.Background(), uuid.New(), CreateCompanyItemRequest{
		MasterItemID: &master.ID,
	})

	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
	itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompanyItemService_Create_RequiresPriceWithoutMaster(t *testing.T) {
	itemRepo := new(MockCompanyItemRepository)
	masterRepo := new(MockMasterItemRepository)
	service := NewCompanyItemService(itemRepo, masterRepo, zap.NewNop())

	_, err := service.Create(context.Background(), uuid.New(), CreateCompanyItemRequest{
		Category: "plumbing",
		Name:     "Copper pipe",
		Unit:     "m",
	})

	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestTermService_Create_FirstTermBecomesDefault(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	termRepo.On("FindByUserAndCategoryForUpdate", mock.Anything, userID, "payment").Return([]catalog.CompanyTerm{}, nil)
	termRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.CompanyTerm")).Return(nil)

	resp, err := service.Create(context.Background(), userID, CreateCompanyTermRequest{
		Category: "payment",
		Title:    "Net 30",
		Content:  "Payment due within 30 days.",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
}

func TestTermService_Create_MakeDefaultDemotesSibling(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	existing := mustTerm(t, userID, "payment", "Net 30", true)

	termRepo.On("FindByUserAndCategoryForUpdate", mock.Anything, userID, "payment").Return([]catalog.CompanyTerm{*existing}, nil)
	termRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(terms []*catalog.CompanyTerm) bool {
		return len(terms) == 1 && terms[0].ID == existing.ID && !terms[0].IsDefault
	})).Return(nil)
	termRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.CompanyTerm")).Return(nil)

	resp, err := service.Create(context.Background(), userID, CreateCompanyTermRequest{
		Category:    "payment",
		Title:       "Net 14",
		Content:     "Payment due within 14 days.",
		MakeDefault: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	termRepo.AssertExpectations(t)
}

func TestTermService_Create_SecondTermStaysNonDefault(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	existing := mustTerm(t, userID, "payment", "Net 30", true)

	termRepo.On("FindByUserAndCategoryForUpdate", mock.Anything, userID, "payment").Return([]catalog.CompanyTerm{*existing}, nil)
	termRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.CompanyTerm")).Return(nil)

	resp, err := service.Create(context.Background(), userID, CreateCompanyTermRequest{
		Category: "payment",
		Title:    "Net 14",
		Content:  "Payment due within 14 days.",
	})

	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	termRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestTermService_SetDefault_SwapsAtomically(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	current := mustTerm(t, userID, "warranty", "Standard warranty", true)
	next := mustTerm(t, userID, "warranty", "Extended warranty", false)

	termRepo.On("FindByIDForUser", mock.Anything, userID, next.ID).Return(next, nil)
	termRepo.On("FindByUserAndCategoryForUpdate", mock.Anything, userID, "warranty").Return([]catalog.CompanyTerm{*current, *next}, nil)
	termRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(terms []*catalog.CompanyTerm) bool {
		if len(terms) != 2 {
			return false
		}
		byID := map[uuid.UUID]bool{}
		for _, term := range terms {
			byID[term.ID] = term.IsDefault
		}
		return !byID[current.ID] && byID[next.ID]
	})).Return(nil)

	resp, err := service.SetDefault(context.Background(), userID, next.ID)

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	termRepo.AssertExpectations(t)
}

func TestTermService_SetDefault_UnknownTerm(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	termRepo.On("FindByIDForUser", mock.Anything, userID, mock.Anything).Return(nil, shared.ErrNotFound)

	_, err := service.SetDefault(context.Background(), userID, uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTermService_Delete_DefaultPromotesNewestSibling(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	target := mustTerm(t, userID, "payment", "Net 30", true)
	older := mustTerm(t, userID, "payment", "Net 14", false)
	newer := mustTerm(t, userID, "payment", "Net 7", false)
	newer.CreatedAt = older.CreatedAt.Add(1)

	termRepo.On("FindByIDForUser", mock.Anything, userID, target.ID).Return(target, nil)
	termRepo.On("FindByUserAndCategoryForUpdate", mock.Anything, userID, "payment").Return([]catalog.CompanyTerm{*target, *older, *newer}, nil)
	termRepo.On("Delete", mock.Anything, target.ID).Return(nil)
	termRepo.On("Save", mock.Anything, mock.MatchedBy(func(term *catalog.CompanyTerm) bool {
		return term.ID == newer.ID && term.IsDefault
	})).Return(nil)

	err := service.Delete(context.Background(), userID, target.ID)

	require.NoError(t, err)
	termRepo.AssertExpectations(t)
}

func TestTermService_Delete_EqualTimestampsPromoteLargerID(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	target := mustTerm(t, userID, "payment", "Net 30", true)
	a := mustTerm(t, userID, "payment", "Net 14", false)
	b := mustTerm(t, userID, "payment", "Net 7", false)
	b.CreatedAt = a.CreatedAt
	want := a
	if b.ID.String() > a.ID.String() {
		want = b
	}

	termRepo.On("FindByIDForUser", mock.Anything, userID, target.ID).Return(target, nil)
	termRepo.On("FindByUserAndCategoryForUpdate", mock.Anything, userID, "payment").Return([]catalog.CompanyTerm{*target, *a, *b}, nil)
	termRepo.On("Delete", mock.Anything, target.ID).Return(nil)
	termRepo.On("Save", mock.Anything, mock.MatchedBy(func(term *catalog.CompanyTerm) bool {
		return term.ID == want.ID && term.IsDefault
	})).Return(nil)

	err := service.Delete(context.Background(), userID, target.ID)

	require.NoError(t, err)
	termRepo.AssertExpectations(t)
}

func TestTermService_Delete_NonDefaultLeavesFlagAlone(t *testing.T) {
	termRepo := new(MockCompanyTermRepository)
	masterRepo := new(MockMasterTermRepository)
	service := NewTermService(NewNoOpTransactionScope(termRepo), masterRepo, termRepo, zap.NewNop())

	userID := uuid.New()
	target := mustTerm(t, userID, "payment", "Net 14", false)
	keeper := mustTerm(t, userID, "payment", "Net 30", true)

	termRepo.On("FindByIDForUser", mock.Anything, userID, target.ID).Return(target, nil)
	termRepo.On("FindByUserAndCategoryForUpdate", mock.Anything, userID, "payment").Return([]catalog.CompanyTerm{*target, *keeper}, nil)
	termRepo.On("Delete", mock.Anything, target.ID).Return(nil)

	err := service.Delete(context.Background(), userID, target.ID)

	require.NoError(t, err)
	termRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func referenceServiceForPlans(t *testing.T, premiumTemplates bool) (*ReferenceService, *MockTemplateRepository, uuid.UUID) {
	t.Helper()

	userRepo := new(MockUserReader)
	planRepo := new(MockPlanReader)
	templateRepo := new(MockTemplateRepository)

	user, err := identity.NewUser("craft@example.com", "secret-password", "Craft Co", identity.PlanFree, 3, 3)
	require.NoError(t, err)
	plan, err := billing.NewSubscriptionPlan(identity.PlanFree, "Free", decimal.Zero, 3, 3, premiumTemplates)
	require.NoError(t, err)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	planRepo.On("FindByPlanID", mock.Anything, identity.PlanFree).Return(plan, nil)

	service := NewReferenceService(
		new(MockMasterItemRepository),
		new(MockMasterTermRepository),
		nil,
		templateRepo,
		userRepo,
		planRepo,
	)
	return service, templateRepo, user.ID
}

func TestReferenceService_ListTemplates_GatesPremiumByPlan(t *testing.T) {
	service, templateRepo, userID := referenceServiceForPlans(t, false)

	basic, err := catalog.NewTemplate(catalog.TemplateKindInvoice, "classic", "Classic", false)
	require.NoError(t, err)
	templateRepo.On("FindByKind", mock.Anything, catalog.TemplateKindInvoice, false).Return([]catalog.Template{*basic}, nil)

	responses, err := service.ListTemplates(context.Background(), userID, catalog.TemplateKindInvoice, true)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "classic", responses[0].Code)
	templateRepo.AssertExpectations(t)
}

func TestReferenceService_ListTemplates_PremiumPlanSeesPremium(t *testing.T) {
	service, templateRepo, userID := referenceServiceForPlans(t, true)

	basic, err := catalog.NewTemplate(catalog.TemplateKindInvoice, "classic", "Classic", false)
	require.NoError(t, err)
	premium, err := catalog.NewTemplate(catalog.TemplateKindInvoice, "elegant", "Elegant", true)
	require.NoError(t, err)
	templateRepo.On("FindByKind", mock.Anything, catalog.TemplateKindInvoice, true).Return([]catalog.Template{*basic, *premium}, nil)

	responses, err := service.ListTemplates(context.Background(), userID, catalog.TemplateKindInvoice, true)

	require.NoError(t, err)
	assert.Len(t, responses, 2)
}

func TestReferenceService_ResolveTemplate_PremiumRefusedOnFreePlan(t *testing.T) {
	service, templateRepo, userID := referenceServiceForPlans(t, false)

	premium, err := catalog.NewTemplate(catalog.TemplateKindQuotation, "elegant", "Elegant", true)
	require.NoError(t, err)
	templateRepo.On("FindByCode", mock.Anything, "elegant").Return(premium, nil)

	_, err = service.ResolveTemplate(context.Background(), userID, "elegant")

	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeForbidden))
}
