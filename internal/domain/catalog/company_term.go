package catalog

import (
	"strings"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyTerm is a user-owned terms block, optionally derived from a
// MasterTerm (association only, not ownership).
//
// Invariant: per (user, category) at most one term has IsDefault set, and a
// user with at least one term in a category has exactly one default there.
// The same state machine as company profiles, scoped one level finer.
type CompanyTerm struct {
	shared.OwnedAggregateRoot
	MasterTermID *uuid.UUID
	Category     string
	Title        string
	Content      string
	IsDefault    bool
}

// NewCompanyTerm creates a new user-owned term. The default flag is decided
// by the invariant manager inside the term transaction scope, not here.
func NewCompanyTerm(userID uuid.UUID, masterTermID *uuid.UUID, category, title, content string) (*CompanyTerm, error) {
	category = strings.TrimSpace(category)
	title = strings.TrimSpace(title)
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if category == "" {
		return nil, shared.NewValidationError("Category cannot be empty")
	}
	if title == "" {
		return nil, shared.NewValidationError("Title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewValidationError("Content cannot be empty")
	}

	return &CompanyTerm{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		MasterTermID:       masterTermID,
		Category:           category,
		Title:              title,
		Content:            content,
	}, nil
}

// MarkDefault flips the default flag on
func (t *CompanyTerm) MarkDefault() {
	t.IsDefault = true
	t.Touch()
}

// ClearDefault flips the default flag off
func (t *CompanyTerm) ClearDefault() {
	t.IsDefault = false
	t.Touch()
}

// CompanyTermPatch enumerates the updatable fields. The category is not
// updatable: moving a term between categories would silently re-scope the
// default invariant, so it is create-and-delete instead.
type CompanyTermPatch struct {
	Title   *string
	Content *string
}

// Apply merges the patch onto the term
func (t *CompanyTerm) Apply(patch CompanyTermPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return shared.NewValidationError("Title cannot be empty")
		}
		t.Title = title
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return shared.NewValidationError("Content cannot be empty")
		}
		t.Content = *patch.Content
	}
	t.Touch()
	return nil
}
