package database

import (
	"database/sql"
	"fmt"
	"os"

	"dj_store_backend/internal/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Connect opens a connection pool to Postgres using the given configuration
// and verifies it with a ping. When a schema path is configured the schema
// script is applied before returning.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if cfg.SchemaPath != "" {
		if err := applySchema(db, cfg.SchemaPath); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// applySchema reads and executes the schema SQL file.
func applySchema(db *sql.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}
