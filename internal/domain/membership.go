package domain

import "time"

// Membership is the join record between a student and a club.
// At most one exists per (UserID, ClubID).
type Membership struct {
	ID          string
	UserID      string
	ClubID      string
	StudentName string
	StudentID   string
	Major       string
	Reason      string
	JoinDate    time.Time
	CreatedAt   time.Time
}

// MembershipKey addresses a membership either by its own id or by the
// (UserID, ClubID) pair. Exactly one form is expected to be populated.
type MembershipKey struct {
	ID     string
	UserID string
	ClubID string
}

// ByID reports whether the key addresses the membership by id.
func (k MembershipKey) ByID() bool {
	return k.ID != ""
}
