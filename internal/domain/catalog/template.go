package catalog

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
)

// TemplateKind says which document type a template renders
type TemplateKind string

const (
	TemplateKindInvoice   TemplateKind = "invoice"
	TemplateKindQuotation TemplateKind = "quotation"
)

// IsValid checks if the kind is a known TemplateKind
func (k TemplateKind) IsValid() bool {
	return k == TemplateKindInvoice || k == TemplateKindQuotation
}

// Template is reference data describing a document layout the PDF renderer
// can use. Premium templates are listed only for paying plans.
type Template struct {
	shared.BaseAggregateRoot
	Kind      TemplateKind
	Code      string // natural key, unique
	Name      string
	IsPremium bool
}

// NewTemplate creates a new template row
func NewTemplate(kind TemplateKind, code, name string, isPremium bool) (*Template, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("Unknown template kind")
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewValidationError("Code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}

	return &Template{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Code:              code,
		Name:              strings.TrimSpace(name),
		IsPremium:         isPremium,
	}, nil
}
