package main

import (
	"log"
	"net/http"

	"dj_store_backend/internal/config"
	"dj_store_backend/internal/database"
	router_pkg "dj_store_backend/internal/router"
	"dj_store_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		utils.LogError(err, "Failed to connect to database")
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database connected", map[string]interface{}{"host": cfg.Database.Host, "name": cfg.Database.Name})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router_pkg.Setup(router, db, cfg)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
