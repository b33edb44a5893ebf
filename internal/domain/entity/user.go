package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in HashedPassword.
// VerificationToken is single-use and cleared once the email is verified
// or once an expired token is presented.
type User struct {
	ID                      string
	Email                   string
	FirstName               string
	LastName                string
	HashedPassword          string
	IsVerified              bool
	VerificationToken       *string
	VerificationTokenExpiry *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
