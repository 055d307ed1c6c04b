package domain

import "time"

// Role distinguishes administrators from students.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// User is an account holder. Role is fixed at registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Major        string
	Interests    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
