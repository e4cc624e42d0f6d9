package models

import "time"

// ReservationStatus is the lifecycle state of an event reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Purchase is a single entry in a client's purchase history.
type Purchase struct {
	ID          int64     `json:"id" db:"id"`
	ClientID    int64     `json:"client_id" db:"client_id"`
	DiscType    string    `json:"disc_type" db:"disc_type"` // e.g. "Vinyl LP"
	Quantity    int       `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	PurchasedAt time.Time `json:"purchased_at" db:"purchased_at"`
}

// EventReservation links a client to an event they reserved a spot for.
type EventReservation struct {
	ID         int64             `json:"id" db:"id"`
	ClientID   int64             `json:"client_id" db:"client_id"`
	EventID    int64             `json:"event_id" db:"event_id"`
	ReservedAt time.Time         `json:"reserved_at" db:"reserved_at"`
	Status     ReservationStatus `json:"status" db:"status"`
}

// Client represents a customer account of the store.
type Client struct {
	ID             int64              `json:"id" db:"id"`
	Name           string             `json:"name" db:"name"`
	Email          string             `json:"email" db:"email"`
	PasswordHash   string             `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Phone          string             `json:"phone" db:"phone"`
	Address        string             `json:"address" db:"address"`
	City           string             `json:"city" db:"city"`
	IsActive       bool               `json:"is_active" db:"is_active"`
	ResetToken     *string            `json:"-" db:"reset_token"` // single active recovery token, NULL when none issued
	EmailConfirmed bool               `json:"email_confirmed" db:"email_confirmed"`
	Purchases      []Purchase         `json:"purchases,omitempty"`
	Reservations   []EventReservation `json:"reservations,omitempty"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

// ClientProfile is the public projection of a Client returned by the API.
// It carries no credential material and no audit timestamps.
type ClientProfile struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	City           string             `json:"city"`
	EmailConfirmed bool               `json:"email_confirmed"`
	Purchases      []Purchase         `json:"purchases,omitempty"`
	Reservations   []EventReservation `json:"reservations,omitempty"`
}

// Profile strips credential and audit fields from a client record.
func (c *Client) Profile() ClientProfile {
	return ClientProfile{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		EmailConfirmed: c.EmailConfirmed,
		Purchases:      c.Purchases,
		Reservations:   c.Reservations,
	}
}
