package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its items by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
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

// FindByIDForUser finds an invoice by ID owned by the user
func (r *GormInvoiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
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

// FindByIDForUpdate loads the invoice row under a row-level write lock.
// Only the root row is locked; items travel with the aggregate and are
// rewritten by Save inside the same transaction.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", id).
		Order("created_at ASC").
		Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds all invoices of a user with filtering
func (r *GormInvoiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("user_id = ?", userID),
		filter, true,
	)
	if err := query.Preload("Items").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]invoicing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// CountForUser counts the user's invoices under the filter
func (r *GormInvoiceRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("user_id = ?", userID),
		filter, false,
	)
	err := query.Count(&count).Error
	return count, err
}

// CountByClient counts invoices referencing a client
func (r *GormInvoiceRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}

// CountByCompanyProfile counts invoices referencing a company profile
func (r *GormInvoiceRepository) CountByCompanyProfile(ctx context.Context, companyProfileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("company_profile_id = ?", companyProfileID).
		Count(&count).Error
	return count, err
}

// NextNumber issues the next invoice number for the user and year
func (r *GormInvoiceRepository) NextNumber(ctx context.Context, userID uuid.UUID, year int) (string, error) {
	return nextSequenceNumber(ctx, r.db, userID, "invoice", "INV", year)
}

// Save persists the invoice aggregate: the root row, then the item rows,
// removing items no longer present. The whole write runs in one transaction.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)

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
			if err := tx.Where("invoice_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
				Delete(&models.InvoiceItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("invoice_id = ?", model.ID).
				Delete(&models.InvoiceItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range items {
			items[i].InvoiceID = model.ID
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an invoice and its items. Usage ledger rows are
// append-only history: their back-reference is nulled, never the row.
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MaterialUsageModel{}).
			Where("invoice_id = ?", id).
			Update("invoice_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).
			Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InvoiceModel{}, "id = ?", id).Error
	})
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
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

var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
