package domain

import "time"

// Event is a dated activity, usually hosted by a club.
// ClubID is informational; the club is not required to exist.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Location    string
	ClubID      string
	Keywords    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
