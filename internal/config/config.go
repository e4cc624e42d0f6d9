package config

import (
	"strings"
	"time"

	"dj_store_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds every setting the process needs. It is built once in main and
// passed by reference to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	Port               string
	CORSAllowedOrigins []string
	FrontendURL        string
	Database           DatabaseConfig
	JWT                JWTConfig
	SMTP               SMTPConfig
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

// JWTConfig holds session token signing settings.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// SMTPConfig holds outbound mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Load reads configuration from the environment. A local .env file is loaded
// first when present.
func Load() *Config {
	_ = godotenv.Load()

	jwtExpiration := 72 * time.Hour
	if raw := utils.Getenv("JWT_EXPIRATION", ""); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			jwtExpiration = parsed
		}
	}

	var corsOrigins []string
	if raw := utils.Getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		corsOrigins = strings.Split(raw, ",")
	} else {
		corsOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	return &Config{
		Port:               utils.Getenv("PORT", "8080"),
		CORSAllowedOrigins: corsOrigins,
		FrontendURL:        utils.Getenv("FRONTEND_URL", "http://localhost:3000/"),
		Database: DatabaseConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "dj_store_user"),
			Password:   utils.Getenv("DB_PASSWORD", "dj_store_password"),
			Name:       utils.Getenv("DB_NAME", "dj_store_db"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		JWT: JWTConfig{
			Secret:     utils.Getenv("JWT_SECRET", "change-me-in-production"),
			Expiration: jwtExpiration,
			Issuer:     utils.Getenv("JWT_ISSUER", "dj-store-backend"),
		},
		SMTP: SMTPConfig{
			Host:     utils.Getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:     utils.Getenv("SMTP_PORT", "587"),
			Username: utils.Getenv("SMTP_USERNAME", ""),
			Password: utils.Getenv("SMTP_PASSWORD", ""),
			From:     utils.Getenv("SMTP_FROM", "no-reply@djstore.local"),
		},
	}
}
