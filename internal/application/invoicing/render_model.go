package invoicing

import (
	"context"
	"time"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyBlock is the seller or buyer block on a rendered document
type PartyBlock struct {
	Name       string `json:"name"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
	TaxNumber  string `json:"tax_number,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// BankBlock is the payment details block on a rendered document
type BankBlock struct {
	BankName string `json:"bank_name,omitempty"`
	IBAN     string `json:"iban,omitempty"`
	BIC      string `json:"bic,omitempty"`
}

// RenderModel is the read model handed to the PDF renderer: one flat
// snapshot of everything a template needs, resolved in a single consistent
// read. The stored totals are passed through untouched; rendering never
// recomputes.
type RenderModel struct {
	Number       string          `json:"number"`
	TemplateCode string          `json:"template_code"`
	Seller       PartyBlock      `json:"seller"`
	Buyer        PartyBlock      `json:"buyer"`
	Bank         BankBlock       `json:"bank"`
	Currency     string          `json:"currency"`
	Items        []ItemResponse  `json:"items"`
	Discount     decimal.Decimal `json:"discount"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Note         string          `json:"note,omitempty"`
	IssuedAt     time.Time       `json:"issued_at"`
}

// RenderModelService assembles invoice render models
type RenderModelService struct {
	scope        TransactionScope
	templateRepo catalog.TemplateRepository
}

// NewRenderModelService creates a new RenderModelService
func NewRenderModelService(scope TransactionScope, templateRepo catalog.TemplateRepository) *RenderModelService {
	return &RenderModelService{
		scope:        scope,
		templateRepo: templateRepo,
	}
}

// Resolve builds the render model for an invoice. The invoice, its issuing
// profile and its client are read in one transaction so the blocks agree
// with each other; the template is reference data resolved outside.
func (s *RenderModelService) Resolve(ctx context.Context, userID, invoiceID uuid.UUID, templateCode string) (*RenderModel, error) {
	if templateCode != "" {
		template, err := s.templateRepo.FindByCode(ctx, templateCode)
		if err != nil {
			return nil, err
		}
		if template.Kind != catalog.TemplateKindInvoice {
			return nil, shared.NewValidationError("Template does not render invoices")
		}
		templateCode = template.Code
	}

	var model RenderModel
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUser(ctx, userID, invoiceID)
		if err != nil {
			return err
		}
		profile, err := repos.ProfileRepo().FindByID(ctx, invoice.CompanyProfileID)
		if err != nil {
			return err
		}
		client, err := repos.ClientRepo().FindByID(ctx, invoice.ClientID)
		if err != nil {
			return err
		}

		items := make([]ItemResponse, 0, len(invoice.Items))
		for _, item := range invoice.Items {
			items = append(items, ToItemResponse(item))
		}

		issuedAt := invoice.CreatedAt
		if invoice.SentAt != nil {
			issuedAt = *invoice.SentAt
		}

		model = RenderModel{
			Number:       invoice.Number,
			TemplateCode: templateCode,
			Seller: PartyBlock{
				Name:       profile.Name,
				Street:     profile.Street,
				City:       profile.City,
				PostalCode: profile.PostalCode,
				Country:    profile.Country,
				TaxNumber:  profile.TaxNumber,
				Email:      profile.Email,
				Phone:      profile.Phone,
			},
			Buyer: PartyBlock{
				Name:       client.Name,
				Street:     client.Street,
				City:       client.City,
				PostalCode: client.PostalCode,
				Country:    client.Country,
				TaxNumber:  client.TaxNumber,
				Email:      client.Email,
				Phone:      client.Phone,
			},
			Bank: BankBlock{
				BankName: profile.BankName,
				IBAN:     profile.IBAN,
				BIC:      profile.BIC,
			},
			Currency: string(invoice.Currency),
			Items:    items,
			Discount: invoice.Discount,
			TaxRate:  invoice.TaxRate,
			Subtotal: invoice.Subtotal,
			Tax:      invoice.Tax,
			Total:    invoice.Total,
			Note:     invoice.Note,
			IssuedAt: issuedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &model, nil
}
