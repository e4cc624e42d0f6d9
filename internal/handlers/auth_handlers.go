package handlers

import (
	"errors"
	"net/http"

	"dj_store_backend/internal/services"
	"dj_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles client login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, utils.FormatBindingError(err))
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login")
		switch {
		case errors.Is(err, services.ErrClientValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrClientNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client is not registered.", err.Error()))
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Password is incorrect.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to login.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetProfile retrieves the profile of the currently authenticated client.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	clientIDRaw, exists := c.Get("clientID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", "Missing client ID in session context"))
		return
	}
	clientID, ok := clientIDRaw.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", "Invalid client ID in session context"))
		return
	}

	profile, err := h.authService.GetProfile(clientID)
	if err != nil {
		utils.LogError(err, "GetProfile: Error from authService.GetProfile for clientID "+utils.Int64ToStr(clientID))
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RecoverPassword starts the password-recovery flow for the given email.
func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, utils.FormatBindingError(err))
		return
	}

	if err := h.authService.RequestPasswordRecovery(req.Email); err != nil {
		utils.LogError(err, "RecoverPassword: Error from authService.RequestPasswordRecovery")
		switch {
		case errors.Is(err, services.ErrClientValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrClientNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Email is not registered.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to start password recovery.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check your email to reset your password"})
}

// VerifyResetToken confirms a recovery token is valid without consuming it.
func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.VerifyResetToken(token); err != nil {
		utils.LogError(err, "VerifyResetToken: Error from authService.VerifyResetToken")
		if errors.Is(err, services.ErrInvalidResetToken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Token is not valid or has expired.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to verify token.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token confirmed, you can now set a new password"})
}

// ResetPassword consumes a recovery token and stores the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, utils.FormatBindingError(err))
		return
	}

	if err := h.authService.ResetPassword(token, req); err != nil {
		utils.LogError(err, "ResetPassword: Error from authService.ResetPassword")
		switch {
		case errors.Is(err, services.ErrClientValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrInvalidResetToken):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Token is not valid or has expired.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reset password.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated, you can now log in with your new password"})
}
