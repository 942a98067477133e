package handler

import (
	companyapp "github.com/billing/backend/internal/application/company"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles company profile endpoints
type ProfileHandler struct {
	BaseHandler
	profileService *companyapp.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *companyapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Create creates a company profile; the first one becomes the default
func (h *ProfileHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req companyapp.CreateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, profile)
}

// List lists the user's company profiles
func (h *ProfileHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profiles, err := h.profileService.List(c.Request.Context(), userID, listFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profiles)
}

// GetDefault returns the user's default profile
func (h *ProfileHandler) GetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.profileService.GetDefault(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// GetByID returns a single profile
func (h *ProfileHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	profile, err := h.profileService.GetByID(c.Request.Context(), userID, profileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Update updates profile fields
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	var req companyapp.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, profileID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// SetDefault promotes a profile to be the user's default
func (h *ProfileHandler) SetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	profile, err := h.profileService.SetDefault(c.Request.Context(), userID, profileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Delete removes a profile unless invoices or quotations reference it
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	profileID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid profile ID")
		return
	}

	if err := h.profileService.Delete(c.Request.Context(), userID, profileID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
