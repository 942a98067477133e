// Package seed bootstraps the reference data the application expects at
// runtime: subscription plans, tax rates, document templates and the
// curated master catalog. Every insert is guarded by a natural-key
// existence check, so running the seeder repeatedly (or from several
// instances at once) only fills the gaps.
package seed

import (
	"context"
	"fmt"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Seeder inserts missing reference data on startup
type Seeder struct {
	planRepo       billing.SubscriptionPlanRepository
	taxRateRepo    catalog.TaxRateRepository
	templateRepo   catalog.TemplateRepository
	masterItemRepo catalog.MasterItemRepository
	masterTermRepo catalog.MasterTermRepository
	logger         *zap.Logger
}

// NewSeeder creates a Seeder over the given repositories
func NewSeeder(
	planRepo billing.SubscriptionPlanRepository,
	taxRateRepo catalog.TaxRateRepository,
	templateRepo catalog.TemplateRepository,
	masterItemRepo catalog.MasterItemRepository,
	masterTermRepo catalog.MasterTermRepository,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		planRepo:       planRepo,
		taxRateRepo:    taxRateRepo,
		templateRepo:   templateRepo,
		masterItemRepo: masterItemRepo,
		masterTermRepo: masterTermRepo,
		logger:         logger,
	}
}

// Run seeds all reference data groups. It stops at the first error so a
// broken seed set never half-applies silently.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedPlans(ctx); err != nil {
		return fmt.Errorf("seeding subscription plans: %w", err)
	}
	if err := s.seedTaxRates(ctx); err != nil {
		return fmt.Errorf("seeding tax rates: %w", err)
	}
	if err := s.seedTemplates(ctx); err != nil {
		return fmt.Errorf("seeding templates: %w", err)
	}
	if err := s.seedMasterItems(ctx); err != nil {
		return fmt.Errorf("seeding master items: %w", err)
	}
	if err := s.seedMasterTerms(ctx); err != nil {
		return fmt.Errorf("seeding master terms: %w", err)
	}
	s.logger.Info("Reference data seeded")
	return nil
}

type planSeed struct {
	planID           string
	name             string
	price            decimal.Decimal
	invoiceQuota     int
	quoteQuota       int
	premiumTemplates bool
}

func (s *Seeder) seedPlans(ctx context.Context) error {
	plans := []planSeed{
		{identity.PlanFree, "Free", decimal.Zero, 10, 10, false},
		{identity.PlanPerInvoice, "Invoice bundle", decimal.NewFromInt(19), 10, 10, true},
		{identity.PlanUnlimited, "Unlimited", decimal.NewFromInt(49), identity.UnlimitedQuota, identity.UnlimitedQuota, true},
	}

	for _, p := range plans {
		exists, err := s.planRepo.ExistsByPlanID(ctx, p.planID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		plan, err := billing.NewSubscriptionPlan(p.planID, p.name, p.price, p.invoiceQuota, p.quoteQuota, p.premiumTemplates)
		if err != nil {
			return err
		}
		if err := s.planRepo.Save(ctx, plan); err != nil {
			return err
		}
		s.logger.Info("Seeded subscription plan", zap.String("plan_id", p.planID))
	}
	return nil
}

type taxRateSeed struct {
	country   string
	name      string
	rate      decimal.Decimal
	isDefault bool
}

func (s *Seeder) seedTaxRates(ctx context.Context) error {
	rates := []taxRateSeed{
		{"SI", "DDV 22%", decimal.NewFromInt(22), true},
		{"SI", "DDV 9.5%", decimal.NewFromFloat(9.5), false},
		{"SI", "Oproščeno", decimal.Zero, false},
		{"AT", "USt 20%", decimal.NewFromInt(20), true},
		{"DE", "MwSt 19%", decimal.NewFromInt(19), true},
		{"HR", "PDV 25%", decimal.NewFromInt(25), true},
		{"IT", "IVA 22%", decimal.NewFromInt(22), true},
	}

	for _, r := range rates {
		if r.isDefault {
			exists, err := s.taxRateRepo.ExistsDefaultForCountry(ctx, r.country)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
		} else {
			present, err := s.nonDefaultRateExists(ctx, r)
			if err != nil {
				return err
			}
			if present {
				continue
			}
		}
		rate, err := catalog.NewTaxRate(r.country, r.name, r.rate, r.isDefault)
		if err != nil {
			return err
		}
		if err := s.taxRateRepo.Save(ctx, rate); err != nil {
			return err
		}
	}
	return nil
}

// nonDefaultRateExists checks non-default rates by (country, name) since
// they carry no other natural key.
func (s *Seeder) nonDefaultRateExists(ctx context.Context, seed taxRateSeed) (bool, error) {
	filter := shared.DefaultFilter()
	filter.Filters = map[string]interface{}{"country": seed.country}
	rates, err := s.taxRateRepo.FindAll(ctx, filter)
	if err != nil {
		return false, err
	}
	for _, rate := range rates {
		if rate.Name == seed.name {
			return true, nil
		}
	}
	return false, nil
}

type templateSeed struct {
	kind      catalog.TemplateKind
	code      string
	name      string
	isPremium bool
}

func (s *Seeder) seedTemplates(ctx context.Context) error {
	templates := []templateSeed{
		{catalog.TemplateKindInvoice, "invoice-classic", "Classic", false},
		{catalog.TemplateKindInvoice, "invoice-minimal", "Minimal", false},
		{catalog.TemplateKindInvoice, "invoice-studio", "Studio", true},
		{catalog.TemplateKindQuotation, "quotation-classic", "Classic", false},
		{catalog.TemplateKindQuotation, "quotation-studio", "Studio", true},
	}

	for _, t := range templates {
		exists, err := s.templateRepo.ExistsByCode(ctx, t.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		template, err := catalog.NewTemplate(t.kind, t.code, t.name, t.isPremium)
		if err != nil {
			return err
		}
		if err := s.templateRepo.Save(ctx, template); err != nil {
			return err
		}
	}
	return nil
}

type masterItemSeed struct {
	category string
	code     string
	name     string
	unit     string
	price    decimal.Decimal
}

func (s *Seeder) seedMasterItems(ctx context.Context) error {
	items := []masterItemSeed{
		{"construction", "CON-001", "Concrete C25/30", "m3", decimal.NewFromInt(95)},
		{"construction", "CON-002", "Reinforcing steel B500", "kg", decimal.NewFromFloat(1.20)},
		{"construction", "CON-003", "Masonry block 29cm", "pcs", decimal.NewFromFloat(2.85)},
		{"carpentry", "CAR-001", "Spruce board 24mm", "m2", decimal.NewFromFloat(18.50)},
		{"carpentry", "CAR-002", "Oak plank 40mm", "m2", decimal.NewFromInt(64)},
		{"services", "SRV-001", "Site labour", "h", decimal.NewFromInt(28)},
		{"services", "SRV-002", "Transport", "km", decimal.NewFromFloat(0.85)},
	}

	for _, i := range items {
		exists, err := s.masterItemRepo.ExistsByCode(ctx, i.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		item, err := catalog.NewMasterItem(i.category, i.code, i.name, i.unit, i.price)
		if err != nil {
			return err
		}
		if err := s.masterItemRepo.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

type masterTermSeed struct {
	category string
	code     string
	title    string
	content  string
}

func (s *Seeder) seedMasterTerms(ctx context.Context) error {
	terms := []masterTermSeed{
		{"payment", "PAY-15", "Payment within 15 days", "Payment is due within 15 days of the invoice date."},
		{"payment", "PAY-30", "Payment within 30 days", "Payment is due within 30 days of the invoice date."},
		{"warranty", "WAR-24", "24 month warranty", "All delivered work carries a 24 month warranty against defects in workmanship."},
		{"validity", "VAL-30", "Offer valid 30 days", "This offer is valid for 30 days from the date of issue."},
	}

	for _, t := range terms {
		exists, err := s.masterTermRepo.ExistsByCode(ctx, t.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		term, err := catalog.NewMasterTerm(t.category, t.code, t.title, t.content)
		if err != nil {
			return err
		}
		if err := s.masterTermRepo.Save(ctx, term); err != nil {
			return err
		}
	}
	return nil
}
