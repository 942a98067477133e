package persistence

import (
	"errors"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// pq error code for unique_violation.
const pqUniqueViolation = "23505"

// translateUniqueViolation maps unique-constraint failures from the
// driver onto the domain error so callers never see raw SQL errors.
// GORM reports gorm.ErrDuplicatedKey when TranslateError is enabled;
// the pq code is matched as well for paths that bypass the translator.
func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return shared.ErrAlreadyExists
	}
	return err
}
