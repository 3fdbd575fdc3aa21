package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/services/user"
	"campuscare/utils"
)

// AuthHandler exposes account registration, sign-in and logout.
type AuthHandler struct {
	Service user.UserService
	Revoker user.TokenRevoker
	Logger  *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service user.UserService, revoker user.TokenRevoker, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Revoker: revoker, Logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Service.Register(c.Request.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    u.Summary(),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, token, err := h.Service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
			return
		}
		h.Logger.Error("login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    u.Summary(),
	})
}

// Logout handles POST /api/auth/logout (authenticated). The presented
// token is revoked until it would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		utils.JSONError(c, http.StatusBadRequest, "missing bearer token", "")
		return
	}

	if err := h.Revoker.Revoke(c.Request.Context(), token); err != nil {
		h.Logger.Error("failed to revoke token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /api/auth/me (authenticated).
func (h *AuthHandler) Me(c *gin.Context) {
	caller := callerFrom(c)
	if !caller.Authenticated() {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	u, err := h.Service.GetByID(c.Request.Context(), caller.ID)
	if err != nil {
		h.Logger.Error("failed to load account", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load account", "")
		return
	}
	if u == nil {
		utils.JSONError(c, http.StatusNotFound, "Account not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u.Summary()})
}
