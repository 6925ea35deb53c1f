package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
//
// Users are created on registration or on first authenticated contact and are
// immutable afterwards; the ledger never deletes a user because expense splits
// reference them forever.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique).
	Email string

	// ImageURL is an optional avatar URL.
	ImageURL string

	// PasswordHash is the bcrypt hash of the user's password.
	// Empty for accounts provisioned by the identity resolver without a
	// local credential.
	PasswordHash string

	// CreatedAt is the Unix millisecond timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and creation timestamp.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UnixMilli(),
	}
}
