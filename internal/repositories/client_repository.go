package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dj_store_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClientByEmail(email string) (*models.Client, error)
	GetClientByResetToken(token string) (*models.Client, error)
	GetActiveClients() ([]models.Client, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeactivateClient(executor SQLExecutor, id int64) error
	SetResetToken(executor SQLExecutor, clientID int64, token string) error
	ConsumeResetToken(executor SQLExecutor, token, newPasswordHash string) (int64, error)
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, email, password_hash, phone, address, city, is_active, reset_token, email_confirmed, created_at, updated_at`

func scanClient(row *sql.Row) (*models.Client, error) {
	client := &models.Client{}
	var resetToken sql.NullString
	err := row.Scan(
		&client.ID, &client.Name, &client.Email, &client.PasswordHash,
		&client.Phone, &client.Address, &client.City, &client.IsActive,
		&resetToken, &client.EmailConfirmed, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if resetToken.Valid {
		client.ResetToken = &resetToken.String
	}
	return client, nil
}

// CreateClient inserts a new client into the database.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (name, email, password_hash, phone, address, city, is_active, email_confirmed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		client.Name, client.Email, client.PasswordHash, client.Phone,
		client.Address, client.City, client.IsActive, client.EmailConfirmed,
		client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by their ID, including purchase history
// and event reservations.
func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}

	if client.Purchases, err = r.getPurchases(id); err != nil {
		return nil, err
	}
	if client.Reservations, err = r.getReservations(id); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClientByEmail retrieves a client by their unique email address.
func (r *clientRepository) GetClientByEmail(email string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`

	client, err := scanClient(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by email %s: %v", ErrDatabaseError, email, err)
	}
	return client, nil
}

// GetClientByResetToken retrieves the client holding the given recovery token.
// Rows with a NULL reset_token never match.
func (r *clientRepository) GetClientByResetToken(token string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE reset_token IS NOT NULL AND reset_token = $1`

	client, err := scanClient(r.db.QueryRow(query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by reset token: %v", ErrDatabaseError, err)
	}
	return client, nil
}

// GetActiveClients retrieves all clients that have not been soft-deleted.
func (r *clientRepository) GetActiveClients() ([]models.Client, error) {
	clients := []models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE is_active = TRUE ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var client models.Client
		var resetToken sql.NullString
		if err := rows.Scan(
			&client.ID, &client.Name, &client.Email, &client.PasswordHash,
			&client.Phone, &client.Address, &client.City, &client.IsActive,
			&resetToken, &client.EmailConfirmed, &client.CreatedAt, &client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		if resetToken.Valid {
			client.ResetToken = &resetToken.String
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClient updates the mutable profile fields of an existing client.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            name = $1, email = $2, phone = $3, address = $4, city = $5, updated_at = $6
	          WHERE id = $7`

	client.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		client.Name, client.Email, client.Phone, client.Address, client.City,
		client.UpdatedAt, client.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateClient soft-deletes a client by flipping its active flag.
// The record stays in the table and remains reachable by id or email.
func (r *clientRepository) DeactivateClient(executor SQLExecutor, id int64) error {
	query := `UPDATE clients SET is_active = FALSE, updated_at = $1 WHERE id = $2`

	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deactivating client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetToken stores a fresh recovery token on the client record,
// overwriting any previously issued token.
func (r *clientRepository) SetResetToken(executor SQLExecutor, clientID int64, token string) error {
	query := `UPDATE clients SET reset_token = $1, updated_at = $2 WHERE id = $3`

	result, err := executor.Exec(query, token, time.Now(), clientID)
	if err != nil {
		return fmt.Errorf("%w: setting reset token for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for setting reset token: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken atomically clears the recovery token and stores the new
// password hash on the record holding it. Returns the client ID, or
// ErrNotFound when no record holds the token (invalid or already consumed).
func (r *clientRepository) ConsumeResetToken(executor SQLExecutor, token, newPasswordHash string) (int64, error) {
	query := `UPDATE clients SET password_hash = $1, reset_token = NULL, updated_at = $2
	          WHERE reset_token IS NOT NULL AND reset_token = $3
	          RETURNING id`

	var clientID int64
	err := executor.QueryRow(query, newPasswordHash, time.Now(), token).Scan(&clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: consuming reset token: %v", ErrDatabaseError, err)
	}
	return clientID, nil
}

func (r *clientRepository) getPurchases(clientID int64) ([]models.Purchase, error) {
	query := `SELECT id, client_id, disc_type, quantity, unit_price, purchased_at
	          FROM purchases WHERE client_id = $1 ORDER BY purchased_at ASC`

	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying purchases for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.ClientID, &p.DiscType, &p.Quantity, &p.UnitPrice, &p.PurchasedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning purchase: %v", ErrDatabaseError, err)
		}
		purchases = append(purchases, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchase rows: %v", ErrDatabaseError, err)
	}
	return purchases, nil
}

func (r *clientRepository) getReservations(clientID int64) ([]models.EventReservation, error) {
	query := `SELECT id, client_id, event_id, reserved_at, status
	          FROM event_reservations WHERE client_id = $1 ORDER BY reserved_at ASC`

	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservations for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	defer rows.Close()

	var reservations []models.EventReservation
	for rows.Next() {
		var res models.EventReservation
		if err := rows.Scan(&res.ID, &res.ClientID, &res.EventID, &res.ReservedAt, &res.Status); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}
