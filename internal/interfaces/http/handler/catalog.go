package handler

import (
	"io"

	catalogapp "github.com/billing/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// maxImportSize bounds the accepted CSV upload
const maxImportSize = 5 << 20

// CatalogHandler handles company item and term endpoints
type CatalogHandler struct {
	BaseHandler
	itemService   *catalogapp.CompanyItemService
	termService   *catalogapp.TermService
	importService *catalogapp.ItemImportService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	itemService *catalogapp.CompanyItemService,
	termService *catalogapp.TermService,
	importService *catalogapp.ItemImportService,
) *CatalogHandler {
	return &CatalogHandler{
		itemService:   itemService,
		termService:   termService,
		importService: importService,
	}
}

// CreateItem creates a company item
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateCompanyItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// ListItems lists the user's company items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := listFilter(c)
	if category := c.Query("category"); category != "" {
		filter.Filters = map[string]interface{}{"category": category}
	}

	items, err := h.itemService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetItem returns a single company item
func (h *CatalogHandler) GetItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// UpdateItem updates a company item
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req catalogapp.UpdateCompanyItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteItem removes a company item
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), userID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ImportItems imports company items from an uploaded CSV file
func (h *CatalogHandler) ImportItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}
	if fileHeader.Size > maxImportSize {
		h.BadRequest(c, "File exceeds maximum import size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}

	result, err := h.importService.Import(c.Request.Context(), userID, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateTerm creates a company term; the first in a category becomes default
func (h *CatalogHandler) CreateTerm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateCompanyTermRequest
	if !h.BindJSON(c, &req) {
		return
	}

	term, err := h.termService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, term)
}

// ListTerms lists the user's company terms
func (h *CatalogHandler) ListTerms(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := listFilter(c)
	if category := c.Query("category"); category != "" {
		filter.Filters = map[string]interface{}{"category": category}
	}

	terms, err := h.termService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, terms)
}

// GetTerm returns a single company term
func (h *CatalogHandler) GetTerm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID")
		return
	}

	term, err := h.termService.GetByID(c.Request.Context(), userID, termID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, term)
}

// UpdateTerm updates a company term
func (h *CatalogHandler) UpdateTerm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID")
		return
	}

	var req catalogapp.UpdateCompanyTermRequest
	if !h.BindJSON(c, &req) {
		return
	}

	term, err := h.termService.Update(c.Request.Context(), userID, termID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, term)
}

// SetDefaultTerm promotes a term to be the default of its category
func (h *CatalogHandler) SetDefaultTerm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID")
		return
	}

	term, err := h.termService.SetDefault(c.Request.Context(), userID, termID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, term)
}

// DeleteTerm removes a company term, promoting a replacement default
func (h *CatalogHandler) DeleteTerm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID")
		return
	}

	if err := h.termService.Delete(c.Request.Context(), userID, termID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
