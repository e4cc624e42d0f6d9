package router

import (
	"database/sql"

	"dj_store_backend/internal/config"
	"dj_store_backend/internal/handlers"
	"dj_store_backend/internal/mailer"
	"dj_store_backend/internal/middleware"
	"dj_store_backend/internal/repositories"
	"dj_store_backend/internal/services"
	"dj_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires the repositories, services and handlers and registers all
// application routes.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config) {
	// Collaborators
	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	mail := mailer.NewSMTPMailer(cfg.SMTP, cfg.FrontendURL)
	hasher := services.NewBcryptHasher()

	// Repositories
	clientRepo := repositories.NewClientRepository(db)

	// Services
	clientService := services.NewClientService(clientRepo, db, hasher, mail)
	authService := services.NewAuthService(clientRepo, db, hasher, mail, tokens)

	// Handlers
	clientHandler := handlers.NewClientHandler(clientService)
	authHandler := handlers.NewAuthHandler(authService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicClientRoutes(apiV1, clientHandler, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedClientRoutes(authenticated, clientHandler, authHandler)
	}
}
