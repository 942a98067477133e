package models

import (
	"time"

	"github.com/billing/backend/internal/domain/document"
	"github.com/google/uuid"
)

// DocumentModel is the persistence model for stored rendered documents
type DocumentModel struct {
	OwnedAggregateModel
	Kind       document.Kind `gorm:"type:varchar(20);not null;index:idx_documents_source"`
	SourceID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_documents_source"`
	StorageKey string        `gorm:"type:varchar(500);not null;uniqueIndex"`
	FileName   string        `gorm:"type:varchar(200);not null"`
	Size       int64         `gorm:"not null;default:0"`
	RenderedAt time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document.
func (m *DocumentModel) ToDomain() *document.Document {
	return &document.Document{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Kind:               m.Kind,
		SourceID:           m.SourceID,
		StorageKey:         m.StorageKey,
		FileName:           m.FileName,
		Size:               m.Size,
		RenderedAt:         m.RenderedAt,
	}
}

// FromDomain populates the persistence model from a domain Document.
func (m *DocumentModel) FromDomain(doc *document.Document) {
	m.FromDomainOwnedAggregateRoot(doc.OwnedAggregateRoot)
	m.Kind = doc.Kind
	m.SourceID = doc.SourceID
	m.StorageKey = doc.StorageKey
	m.FileName = doc.FileName
	m.Size = doc.Size
	m.RenderedAt = doc.RenderedAt
}
