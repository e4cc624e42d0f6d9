package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dj_store_backend/internal/mailer"
	"dj_store_backend/internal/models"
	"dj_store_backend/internal/repositories"
	"dj_store_backend/pkg/utils"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrClientValidation = errors.New("client data validation error")
)

// Generated temporary passwords carry this prefix so they always contain a
// letter regardless of what the random tail produces.
const tempPasswordPrefix = "dj"

const tempPasswordLength = 10

// --- Client DTOs ---

// RegisterClientRequest carries the fields required to open an account.
// The password is generated server-side and mailed to the client.
type RegisterClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
}

// UpdateClientRequest carries the profile fields a client may change.
// Nil fields are left untouched.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

// --- ClientService Interface ---
type ClientService interface {
	RegisterClient(req RegisterClientRequest) error
	GetClientByID(clientID int64) (*models.Client, error)
	GetActiveClients() ([]models.ClientProfile, error)
	UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeactivateClient(clientID int64) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
	hasher     PasswordHasher
	mail       mailer.Mailer
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, db *sql.DB, hasher PasswordHasher, mail mailer.Mailer) ClientService {
	return &clientService{
		clientRepo: repo,
		db:         db,
		hasher:     hasher,
		mail:       mail,
	}
}

// validateRegistration checks every required field independently so each
// missing field is named in the returned error.
func validateRegistration(req RegisterClientRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"address", req.Address},
		{"city", req.City},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrClientValidation, f.name)
		}
	}
	return nil
}

// RegisterClient opens a new account. A random temporary password is
// generated, hashed and persisted, and then mailed to the client. The record
// is committed before the mail is dispatched: a failed notification is
// logged but does not lose the account.
func (s *clientService) RegisterClient(req RegisterClientRequest) error {
	if err := validateRegistration(req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.clientRepo.GetClientByEmail(email)
	if err == nil {
		return ErrEmailExists
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	tail, err := utils.RandomString(tempPasswordLength)
	if err != nil {
		return fmt.Errorf("failed to generate temporary password: %w", err)
	}
	tempPassword := tempPasswordPrefix + tail

	passwordHash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	client := &models.Client{
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		IsActive:     true,
	}

	if _, err := s.clientRepo.CreateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create client in repository: %w", err)
	}

	if err := s.mail.SendWelcome(email, tempPassword); err != nil {
		utils.LogWarn(err, "RegisterClient: welcome mail failed, account was created")
	}
	return nil
}

// GetClientByID retrieves a client record with its purchase history and
// event reservations.
func (s *clientService) GetClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

// GetActiveClients lists every account that has not been soft-deleted,
// projected to the public shape.
func (s *clientService) GetActiveClients() ([]models.ClientProfile, error) {
	clients, err := s.clientRepo.GetActiveClients()
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	profiles := make([]models.ClientProfile, 0, len(clients))
	for i := range clients {
		profiles = append(profiles, clients[i].Profile())
	}
	return profiles, nil
}

// UpdateClient merges the provided fields into an existing record and
// persists it. Fields provided as empty strings are rejected.
func (s *clientService) UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error) {
	provided := map[string]*string{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"address": req.Address,
		"city":    req.City,
	}
	for name, value := range provided {
		if value != nil && strings.TrimSpace(*value) == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", ErrClientValidation, name)
		}
	}

	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.City != nil {
		client.City = *req.City
	}

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(clientID)
}

// DeactivateClient soft-deletes an account. Deactivating an already inactive
// account succeeds and leaves it inactive.
func (s *clientService) DeactivateClient(clientID int64) error {
	if err := s.clientRepo.DeactivateClient(s.db, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to deactivate client: %w", err)
	}
	return nil
}
