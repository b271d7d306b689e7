package domain

import "time"

// User is the domain entity for a registered account.
// PasswordHash never leaves the service layer.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
