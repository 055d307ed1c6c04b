package domain

import "time"

// Actor is the verified caller of an operation, derived from token claims.
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanActFor reports whether the actor may operate on behalf of userID.
// Admins may act for anyone; students only for themselves.
func (a Actor) CanActFor(userID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID != "" && a.UserID == NormalizeID(userID)
}

// Token represents issued access token metadata.
type Token struct {
	Value     string
	UserID    string
	Role      Role
	ExpiresAt time.Time
}
