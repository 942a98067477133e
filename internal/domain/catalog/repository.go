package catalog

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MasterItemRepository defines persistence operations for curated items
type MasterItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MasterItem, error)
	FindByCode(ctx context.Context, code string) (*MasterItem, error)
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]MasterItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]MasterItem, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, item *MasterItem) error
}

// MasterTermRepository defines persistence operations for curated terms
type MasterTermRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MasterTerm, error)
	FindByCode(ctx context.Context, code string) (*MasterTerm, error)
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]MasterTerm, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, term *MasterTerm) error
}

// CompanyItemRepository defines persistence operations for user-owned items
type CompanyItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CompanyItem, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*CompanyItem, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]CompanyItem, error)
	Save(ctx context.Context, item *CompanyItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyTermRepository defines persistence operations for user-owned terms
type CompanyTermRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CompanyTerm, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*CompanyTerm, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]CompanyTerm, error)

	// FindByUserAndCategoryForUpdate loads every term of the (user,
	// category) scope under row-level write locks; default-swap and
	// delete-with-promotion start here.
	FindByUserAndCategoryForUpdate(ctx context.Context, userID uuid.UUID, category string) ([]CompanyTerm, error)

	Save(ctx context.Context, term *CompanyTerm) error
	SaveAll(ctx context.Context, terms []*CompanyTerm) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxRateRepository defines persistence operations for tax rates
type TaxRateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TaxRate, error)

	// FindDefaultForCountry returns the default rate row for a country, or
	// shared.ErrNotFound when the country has none configured.
	FindDefaultForCountry(ctx context.Context, country string) (*TaxRate, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]TaxRate, error)
	ExistsDefaultForCountry(ctx context.Context, country string) (bool, error)
	Save(ctx context.Context, rate *TaxRate) error
}

// TemplateRepository defines persistence operations for templates
type TemplateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
	FindByCode(ctx context.Context, code string) (*Template, error)

	// FindByKind lists templates for a document type; includePremium
	// widens the listing for paying plans.
	FindByKind(ctx context.Context, kind TemplateKind, includePremium bool) ([]Template, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, template *Template) error
}
