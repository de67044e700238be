package models

import "time"

// User is a registered identity. PasswordHash holds a bcrypt hash; the raw
// secret is never persisted.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
