package handler

import (
	"time"

	identityapp "github.com/billing/backend/internal/application/identity"
	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and account endpoints
type AuthHandler struct {
	BaseHandler
	userService *identityapp.UserService
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *identityapp.UserService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// AuthResponse carries the access token together with the account
type AuthResponse struct {
	AccessToken string                   `json:"access_token"`
	TokenType   string                   `json:"token_type"`
	ExpiresAt   time.Time                `json:"expires_at"`
	User        identityapp.UserResponse `json:"user"`
}

// RenameRequest updates the account display name
type RenameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// Register creates a new account on the free plan and returns a token
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.authResponse(*user)
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}
	h.Created(c, resp)
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.authResponse(*user)
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}
	h.Success(c, resp)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Rename updates the display name of the authenticated account
func (h *AuthHandler) Rename(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RenameRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Rename(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func (h *AuthHandler) authResponse(user identityapp.UserResponse) (*AuthResponse, error) {
	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
