package catalog

import (
	"context"
	"strings"

	"github.com/billing/backend/internal/domain/catalog"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/csvimport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// itemImportHeaders are the columns an item CSV must carry. Extra columns
// are ignored.
var itemImportHeaders = []string{"category", "name", "unit", "price"}

// ItemImportResult summarizes a bulk item import
type ItemImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
}

// ItemImportService imports company items from uploaded CSV files. Rows
// are validated independently; good rows import even when others fail.
type ItemImportService struct {
	itemRepo catalog.CompanyItemRepository
	logger   *zap.Logger
}

// NewItemImportService creates a new ItemImportService
func NewItemImportService(itemRepo catalog.CompanyItemRepository, logger *zap.Logger) *ItemImportService {
	return &ItemImportService{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// Import parses the CSV payload and creates a company item per valid row
func (s *ItemImportService) Import(ctx context.Context, userID uuid.UUID, data []byte) (*ItemImportResult, error) {
	parser, err := csvimport.ParseFromBytes(data)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewValidationError(err.Error())
	}
	if missing := parser.MissingHeaders(itemImportHeaders); len(missing) > 0 {
		return nil, shared.NewValidationError("Missing required columns: " + strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	result := &ItemImportResult{TotalRows: len(rows)}
	for _, row := range rows {
		if err := s.importRow(ctx, userID, row, result); err != nil {
			return nil, err
		}
	}

	s.logger.Info("item import finished",
		zap.String("user_id", userID.String()),
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("errors", result.ErrorRows))
	return result, nil
}

// importRow imports one row; validation failures land in the result, only
// repository errors abort the import.
func (s *ItemImportService) importRow(ctx context.Context, userID uuid.UUID, row *csvimport.Row, result *ItemImportResult) error {
	price, err := decimal.NewFromString(row.Get("price"))
	if err != nil {
		result.ErrorRows++
		result.Errors = append(result.Errors, csvimport.NewRowError(row.LineNumber, "price", "Price must be a decimal number"))
		return nil
	}
	if price.IsNegative() {
		result.ErrorRows++
		result.Errors = append(result.Errors, csvimport.NewRowError(row.LineNumber, "price", "Price cannot be negative"))
		return nil
	}

	item, err := catalog.NewCompanyItem(userID, nil, row.Get("category"), row.Get("name"), row.Get("unit"), price)
	if err != nil {
		result.ErrorRows++
		result.Errors = append(result.Errors, csvimport.NewRowError(row.LineNumber, "", err.Error()))
		return nil
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return err
	}
	result.ImportedRows++
	return nil
}
