package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/billing/backend/internal/domain/document"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document record by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds a document record by ID owned by the user
func (r *GormDocumentRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's document records with filtering
func (r *GormDocumentRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	query := r.db.WithContext(ctx).Model(&models.DocumentModel{}).
		Where("user_id = ?", userID)
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(file_name) LIKE ?", pattern)
	}
	if kind, ok := filter.Filters["kind"]; ok {
		query = query.Where("kind = ?", kind)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var documentModels []models.DocumentModel
	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}
	documents := make([]document.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// FindBySource lists the records rendered for one source document
func (r *GormDocumentRepository) FindBySource(ctx context.Context, kind document.Kind, sourceID uuid.UUID) ([]document.Document, error) {
	var documentModels []models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND source_id = ?", kind, sourceID).
		Order("created_at DESC").
		Find(&documentModels).Error; err != nil {
		return nil, err
	}
	documents := make([]document.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// Save persists a document record
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	var model models.DocumentModel
	model.FromDomain(doc)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

// Delete removes a document record
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id).Error
}

var _ document.Repository = (*GormDocumentRepository)(nil)
