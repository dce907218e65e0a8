package model

import "time"

// Roles assignable to a user account.  Registration always produces
// RoleUser; admin accounts are provisioned directly in the database.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the users table.  The password hash never leaves the server;
// it is excluded from JSON serialization entirely.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
