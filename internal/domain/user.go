package domain

import "time"

// User represents a registered account. PasswordHash never leaves the
// service layer; responses are built from sanitized copies.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
