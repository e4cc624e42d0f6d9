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

	"github.com/google/uuid"
)

// --- Custom Service Errors ---
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("reset token is not valid or was already used")
	ErrTokenGeneration    = errors.New("failed to generate session token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest carries the new credential for a recovery flow.
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	AccessToken string               `json:"token"`
	Client      models.ClientProfile `json:"client"`
}

// --- AuthService Interface ---

// AuthService owns credential verification, session token issuance and the
// password-recovery token lifecycle:
//
//	no token issued --request--> token issued --reset--> no token issued
//
// Verify checks a token without consuming it. Issuing a new token overwrites
// any previous one, which invalidates it implicitly.
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	GetProfile(clientID int64) (*models.ClientProfile, error)
	RequestPasswordRecovery(email string) error
	VerifyResetToken(token string) error
	ResetPassword(token string, req ResetPasswordRequest) error
}

// --- authService Implementation ---
type authService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
	hasher     PasswordHasher
	mail       mailer.Mailer
	tokens     *utils.TokenManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(repo repositories.ClientRepository, db *sql.DB, hasher PasswordHasher, mail mailer.Mailer, tokens *utils.TokenManager) AuthService {
	return &authService{
		clientRepo: repo,
		db:         db,
		hasher:     hasher,
		mail:       mail,
		tokens:     tokens,
	}
}

// Login verifies the credentials and issues a signed session token binding
// the client's ID and role.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrClientValidation)
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrClientValidation)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	client, err := s.clientRepo.GetClientByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !s.hasher.Verify(req.Password, client.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(client.ID, utils.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{
		AccessToken: accessToken,
		Client:      client.Profile(),
	}, nil
}

// GetProfile retrieves the public profile of the session-bound client.
func (s *authService) GetProfile(clientID int64) (*models.ClientProfile, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to retrieve client profile: %w", err)
	}
	profile := client.Profile()
	return &profile, nil
}

// RequestPasswordRecovery mints a fresh recovery token, stores it on the
// record (overwriting any prior token) and mails it to the client. The token
// is persisted before the mail goes out.
func (s *authService) RequestPasswordRecovery(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrClientValidation)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	client, err := s.clientRepo.GetClientByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to look up client for recovery: %w", err)
	}

	token := uuid.NewString()
	if err := s.clientRepo.SetResetToken(s.db, client.ID, token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mail.SendPasswordRecovery(email, token); err != nil {
		return fmt.Errorf("failed to send recovery mail: %w", err)
	}
	return nil
}

// VerifyResetToken confirms a recovery token is currently valid without
// consuming it, so the client application can show the new-password form.
func (s *authService) VerifyResetToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidResetToken
	}
	_, err := s.clientRepo.GetClientByResetToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to verify reset token: %w", err)
	}
	return nil
}

// ResetPassword consumes a recovery token: the token is cleared and the new
// password hash stored in one atomic update, so the same token can never be
// used twice.
func (s *authService) ResetPassword(token string, req ResetPasswordRequest) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidResetToken
	}
	if strings.TrimSpace(req.Password) == "" {
		return fmt.Errorf("%w: password is required", ErrClientValidation)
	}
	if strings.TrimSpace(req.ConfirmPassword) == "" {
		return fmt.Errorf("%w: confirm_password is required", ErrClientValidation)
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", ErrClientValidation)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if _, err := s.clientRepo.ConsumeResetToken(s.db, token, passwordHash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	return nil
}
