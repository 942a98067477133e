package billing

import (
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaterialUsage records that a user pulled a curated catalog item into one
// of their documents. Records are append-only: the ledger never rewrites or
// deletes them, so the per-user counter stays monotonic.
type MaterialUsage struct {
	shared.BaseEntity
	UserID       uuid.UUID
	MasterItemID uuid.UUID
	QuotationID  *uuid.UUID
	InvoiceID    *uuid.UUID
	UsedAt       time.Time
}

// NewMaterialUsage creates a usage record. Exactly the source document the
// item landed in is referenced; both may be nil for ad-hoc catalog pulls.
func NewMaterialUsage(userID, masterItemID uuid.UUID, quotationID, invoiceID *uuid.UUID, usedAt time.Time) (*MaterialUsage, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if masterItemID == uuid.Nil {
		return nil, shared.NewValidationError("Master item ID cannot be empty")
	}

	return &MaterialUsage{
		BaseEntity:   shared.NewBaseEntity(),
		UserID:       userID,
		MasterItemID: masterItemID,
		QuotationID:  quotationID,
		InvoiceID:    invoiceID,
		UsedAt:       usedAt,
	}, nil
}
