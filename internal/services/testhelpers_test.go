package services_test

import (
	"strings"
	"time"

	"dj_store_backend/internal/models"
	"dj_store_backend/internal/repositories"
)

// memoryClientRepo is an in-memory ClientRepository used by the service
// tests. It mirrors the semantics the Postgres repository guarantees:
// unique emails, NULL tokens never match, atomic token consumption.
type memoryClientRepo struct {
	nextID  int64
	clients map[int64]*models.Client
}

func newMemoryClientRepo() *memoryClientRepo {
	return &memoryClientRepo{clients: make(map[int64]*models.Client)}
}

func (m *memoryClientRepo) CreateClient(_ repositories.SQLExecutor, client *models.Client) (int64, error) {
	for _, existing := range m.clients {
		if strings.EqualFold(existing.Email, client.Email) {
			return 0, repositories.ErrDuplicateKey
		}
	}
	m.nextID++
	client.ID = m.nextID
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt
	copied := *client
	m.clients[client.ID] = &copied
	return client.ID, nil
}

func (m *memoryClientRepo) GetClientByID(id int64) (*models.Client, error) {
	client, ok := m.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *client
	return &copied, nil
}

func (m *memoryClientRepo) GetClientByEmail(email string) (*models.Client, error) {
	for _, client := range m.clients {
		if strings.EqualFold(client.Email, email) {
			copied := *client
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryClientRepo) GetClientByResetToken(token string) (*models.Client, error) {
	for _, client := range m.clients {
		if client.ResetToken != nil && *client.ResetToken == token {
			copied := *client
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryClientRepo) GetActiveClients() ([]models.Client, error) {
	var active []models.Client
	for _, client := range m.clients {
		if client.IsActive {
			active = append(active, *client)
		}
	}
	return active, nil
}

func (m *memoryClientRepo) UpdateClient(_ repositories.SQLExecutor, client *models.Client) error {
	stored, ok := m.clients[client.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for id, existing := range m.clients {
		if id != client.ID && strings.EqualFold(existing.Email, client.Email) {
			return repositories.ErrDuplicateKey
		}
	}
	stored.Name = client.Name
	stored.Email = client.Email
	stored.Phone = client.Phone
	stored.Address = client.Address
	stored.City = client.City
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *memoryClientRepo) DeactivateClient(_ repositories.SQLExecutor, id int64) error {
	client, ok := m.clients[id]
	if !ok {
		return repositories.ErrNotFound
	}
	client.IsActive = false
	return nil
}

func (m *memoryClientRepo) SetResetToken(_ repositories.SQLExecutor, clientID int64, token string) error {
	client, ok := m.clients[clientID]
	if !ok {
		return repositories.ErrNotFound
	}
	client.ResetToken = &token
	return nil
}

func (m *memoryClientRepo) ConsumeResetToken(_ repositories.SQLExecutor, token, newPasswordHash string) (int64, error) {
	for _, client := range m.clients {
		if client.ResetToken != nil && *client.ResetToken == token {
			client.ResetToken = nil
			client.PasswordHash = newPasswordHash
			return client.ID, nil
		}
	}
	return 0, repositories.ErrNotFound
}

// recordingMailer captures outbound notifications instead of sending them.
type recordingMailer struct {
	welcomePasswords map[string]string // email -> temp password
	recoveryTokens   map[string]string // email -> token
	welcomeErr       error
	recoveryErr      error
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		welcomePasswords: make(map[string]string),
		recoveryTokens:   make(map[string]string),
	}
}

func (r *recordingMailer) SendWelcome(to, tempPassword string) error {
	if r.welcomeErr != nil {
		return r.welcomeErr
	}
	r.welcomePasswords[to] = tempPassword
	return nil
}

func (r *recordingMailer) SendPasswordRecovery(to, token string) error {
	if r.recoveryErr != nil {
		return r.recoveryErr
	}
	r.recoveryTokens[to] = token
	return nil
}
