package document

import (
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind says which aggregate a stored file was rendered from
type Kind string

const (
	KindInvoice   Kind = "invoice"
	KindQuotation Kind = "quotation"
)

// IsValid checks if the kind is a known Kind
func (k Kind) IsValid() bool {
	return k == KindInvoice || k == KindQuotation
}

// Document is the record of a rendered PDF in object storage. The file
// itself lives behind the Storage port; this row carries the key and enough
// metadata to list and re-download it.
type Document struct {
	shared.OwnedAggregateRoot
	Kind       Kind
	SourceID   uuid.UUID // invoice or quotation ID
	StorageKey string
	FileName   string
	Size       int64
	RenderedAt time.Time
}

// NewDocument creates a new stored-document record
func NewDocument(userID uuid.UUID, kind Kind, sourceID uuid.UUID, storageKey, fileName string, size int64, renderedAt time.Time) (*Document, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("Unknown document kind")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewValidationError("Source ID cannot be empty")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewValidationError("Storage key cannot be empty")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewValidationError("File name cannot be empty")
	}
	if size < 0 {
		return nil, shared.NewValidationError("Size cannot be negative")
	}

	return &Document{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Kind:               kind,
		SourceID:           sourceID,
		StorageKey:         storageKey,
		FileName:           fileName,
		Size:               size,
		RenderedAt:         renderedAt,
	}, nil
}
