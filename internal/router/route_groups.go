package router

import (
	"dj_store_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicClientRoutes registers the routes reachable without a session:
// registration, login and the whole password-recovery flow.
func SetupPublicClientRoutes(apiGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, authHandler *handlers.AuthHandler) {
	clientRoutes := apiGroup.Group("/clients")
	{
		clientRoutes.POST("/register", clientHandler.RegisterClient)
		clientRoutes.POST("/login", authHandler.Login)

		clientRoutes.POST("/password/recovery", authHandler.RecoverPassword)
		clientRoutes.GET("/password/recovery/:token", authHandler.VerifyResetToken)
		clientRoutes.POST("/password/recovery/:token", authHandler.ResetPassword)
	}
}

// SetupAuthenticatedClientRoutes registers the routes that require a valid
// session token.
func SetupAuthenticatedClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, authHandler *handlers.AuthHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.GET("/profile", authHandler.GetProfile)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
	}
}
