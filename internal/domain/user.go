package domain

import "time"

// User is a mock-auth account record. The password hash is part of the
// persisted snapshot but must never appear in API responses; handlers return
// a stripped view.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
