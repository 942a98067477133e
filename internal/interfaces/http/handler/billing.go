package handler

import (
	billingapp "github.com/billing/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// BillingHandler handles subscription plan and usage ledger endpoints
type BillingHandler struct {
	BaseHandler
	ledgerService *billingapp.LedgerService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(ledgerService *billingapp.LedgerService) *BillingHandler {
	return &BillingHandler{ledgerService: ledgerService}
}

// UpdateSubscriptionRequest selects a subscription plan
type UpdateSubscriptionRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

// TrackUsageRequest records one use of a master catalog item
type TrackUsageRequest struct {
	MasterItemID string `json:"master_item_id" binding:"required,uuid"`
}

// ListPlans lists the active subscription plans
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.ledgerService.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plans)
}

// GetUsage returns the user's quota counters
func (h *BillingHandler) GetUsage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	usage, err := h.ledgerService.GetUsage(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, usage)
}

// UpdateSubscription switches the user to another plan
func (h *BillingHandler) UpdateSubscription(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateSubscriptionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	usage, err := h.ledgerService.UpdateSubscription(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, usage)
}

// TrackUsage records a master item use against the material ledger
func (h *BillingHandler) TrackUsage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req TrackUsageRequest
	if !h.BindJSON(c, &req) {
		return
	}
	masterItemID, err := parseUUID(req.MasterItemID)
	if err != nil {
		h.BadRequest(c, "Invalid master_item_id")
		return
	}

	usage, err := h.ledgerService.TrackMaterialUsage(c.Request.Context(), userID, masterItemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, usage)
}
