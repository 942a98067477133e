package handler

import (
	catalogapp "github.com/billing/backend/internal/application/catalog"
	"github.com/billing/backend/internal/domain/catalog"
	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the shared read-only reference data: master
// items, master terms, tax rates and document templates
type ReferenceHandler struct {
	BaseHandler
	referenceService *catalogapp.ReferenceService
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(referenceService *catalogapp.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// ListMasterItems lists curated items, optionally narrowed to a category
func (h *ReferenceHandler) ListMasterItems(c *gin.Context) {
	items, err := h.referenceService.ListMasterItems(c.Request.Context(), c.Query("category"), listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListMasterTerms lists curated terms, optionally narrowed to a category
func (h *ReferenceHandler) ListMasterTerms(c *gin.Context) {
	terms, err := h.referenceService.ListMasterTerms(c.Request.Context(), c.Query("category"), listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, terms)
}

// ListTaxRates lists tax rates, optionally narrowed to a country
func (h *ReferenceHandler) ListTaxRates(c *gin.Context) {
	filter := listFilter(c)
	if country := c.Query("country"); country != "" {
		filter.Filters = map[string]interface{}{"country": country}
	}

	rates, err := h.referenceService.ListTaxRates(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}

// ListTemplates lists the templates of a kind available to the user's plan
func (h *ReferenceHandler) ListTemplates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	kind := catalog.TemplateKind(c.Query("kind"))
	if kind != catalog.TemplateKindInvoice && kind != catalog.TemplateKindQuotation {
		h.BadRequest(c, "kind must be invoice or quotation")
		return
	}

	templates, err := h.referenceService.ListTemplates(c.Request.Context(), userID, kind, true)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, templates)
}

// ResolveTemplate loads a template by code, enforcing the premium gate
func (h *ReferenceHandler) ResolveTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	template, err := h.referenceService.ResolveTemplate(c.Request.Context(), userID, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}
