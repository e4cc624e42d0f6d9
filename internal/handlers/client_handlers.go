package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"dj_store_backend/internal/services"
	"dj_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// parseClientID validates the path identifier. A malformed identifier is
// reported as not-found, the same as an absent record.
func parseClientID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	clientID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client with ID "+idStr+" does not exist.", "malformed identifier"))
		return 0, false
	}
	return clientID, true
}

// RegisterClient handles the creation of a new client account.
func (h *ClientHandler) RegisterClient(c *gin.Context) {
	var req services.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, utils.FormatBindingError(err))
		return
	}

	if err := h.clientService.RegisterClient(req); err != nil {
		utils.LogError(err, "RegisterClient: Error from clientService.RegisterClient")
		switch {
		case errors.Is(err, services.ErrClientValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email is already registered.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration complete. Please check your email for your temporary password"})
}

// GetClients handles listing all active clients.
func (h *ClientHandler) GetClients(c *gin.Context) {
	profiles, err := h.clientService.GetActiveClients()
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetActiveClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch the client list.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetClientByID handles fetching a single client by ID.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(clientID)
	if err != nil {
		utils.LogError(err, "GetClientByID: Error from clientService.GetClientByID for ID "+utils.Int64ToStr(clientID))
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client.Profile())
}

// UpdateClient handles updating a client's profile fields.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, utils.FormatBindingError(err))
		return
	}

	client, err := h.clientService.UpdateClient(clientID, req)
	if err != nil {
		utils.LogError(err, "UpdateClient: Error from clientService.UpdateClient for ID "+utils.Int64ToStr(clientID))
		switch {
		case errors.Is(err, services.ErrClientValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrClientNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found to update.", err.Error()))
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email is already registered.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client updated successfully", "client": client.Profile()})
}

// DeleteClient handles soft-deleting a client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, ok := parseClientID(c)
	if !ok {
		return
	}

	if err := h.clientService.DeactivateClient(clientID); err != nil {
		utils.LogError(err, "DeleteClient: Error from clientService.DeactivateClient for ID "+utils.Int64ToStr(clientID))
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
