package catalog

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
)

// MasterTerm is a curated terms-and-conditions block (payment terms,
// delivery terms, warranty text) shared across all users.
type MasterTerm struct {
	shared.BaseAggregateRoot
	Category string
	Code     string // natural key, unique
	Title    string
	Content  string
	IsActive bool
}

// NewMasterTerm creates a new curated term
func NewMasterTerm(category, code, title, content string) (*MasterTerm, error) {
	category = strings.TrimSpace(category)
	code = strings.ToUpper(strings.TrimSpace(code))
	title = strings.TrimSpace(title)
	if category == "" {
		return nil, shared.NewValidationError("Category cannot be empty")
	}
	if code == "" {
		return nil, shared.NewValidationError("Code cannot be empty")
	}
	if title == "" {
		return nil, shared.NewValidationError("Title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewValidationError("Content cannot be empty")
	}

	return &MasterTerm{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
		Code:              code,
		Title:             title,
		Content:           content,
		IsActive:          true,
	}, nil
}
