package domain

import "time"

// User is a staff account allowed to use the desk.
type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
