package domain

import "time"

// Registration is the join record between a student and an event.
// At most one exists per (UserID, EventID).
type Registration struct {
	ID           string
	UserID       string
	EventID      string
	RegisteredAt time.Time
	CreatedAt    time.Time
}

// RegistrationKey addresses a registration by id or by (UserID, EventID).
type RegistrationKey struct {
	ID      string
	UserID  string
	EventID string
}

// ByID reports whether the key addresses the registration by id.
func (k RegistrationKey) ByID() bool {
	return k.ID != ""
}
