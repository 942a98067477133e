package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/billing/backend/internal/domain/quotation"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByID finds a quotation with its items by ID
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*quotation.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds a quotation by ID owned by the user
func (r *GormQuotationRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*quotation.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads the quotation row under a row-level write lock
func (r *GormQuotationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*quotation.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("quotation_id = ?", id).
		Order("created_at ASC").
		Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all quotations of a user with filtering
func (r *GormQuotationRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]quotation.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}).Where("user_id = ?", userID),
		filter, true,
	)
	if err := query.Preload("Items").Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]quotation.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// CountForUser counts the user's quotations under the filter
func (r *GormQuotationRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}).Where("user_id = ?", userID),
		filter, false,
	)
	err := query.Count(&count).Error
	return count, err
}

// CountByClient counts quotations referencing a client
func (r *GormQuotationRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QuotationModel{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}

// CountByCompanyProfile counts quotations referencing a company profile
func (r *GormQuotationRepository) CountByCompanyProfile(ctx context.Context, companyProfileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QuotationModel{}).
		Where("company_profile_id = ?", companyProfileID).
		Count(&count).Error
	return count, err
}

// NextNumber issues the next quotation number for the user and year
func (r *GormQuotationRepository) NextNumber(ctx context.Context, userID uuid.UUID, year int) (string, error) {
	return nextSequenceNumber(ctx, r.db, userID, "quotation", "QUO", year)
}

// Save persists the quotation aggregate in one transaction
func (r *GormQuotationRepository) Save(ctx context.Context, q *quotation.Quotation) error {
	var model models.QuotationModel
	model.FromDomain(q)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil
		if err := tx.Save(&model).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(items))
		for i, item := range items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("quotation_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
				Delete(&models.QuotationItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("quotation_id = ?", model.ID).
				Delete(&models.QuotationItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range items {
			items[i].QuotationID = model.ID
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a quotation and its items. Usage ledger rows are
// append-only history: their back-reference is nulled, never the row.
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MaterialUsageModel{}).
			Where("quotation_id = ?", id).
			Update("quotation_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", id).
			Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.QuotationModel{}, "id = ?", id).Error
	})
}

func (r *GormQuotationRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(number) LIKE ? OR LOWER(note) LIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if clientID, ok := filter.Filters["client_id"]; ok {
		query = query.Where("client_id = ?", clientID)
	}
	if !paginate {
		return query
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

var _ quotation.QuotationRepository = (*GormQuotationRepository)(nil)
