package domain

import "time"

// Club is a student organisation managed by administrators.
type Club struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
