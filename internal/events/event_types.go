package events

import (
	"time"

	"github.com/spec-kit/au-connect/internal/domain"
)

// EventType enumerates supported activity identifiers.
type EventType string

const (
	EventMembershipJoined    EventType = "membership_joined"
	EventMembershipRemoved   EventType = "membership_removed"
	EventRegistrationCreated EventType = "registration_created"
	EventRegistrationRemoved EventType = "registration_removed"
	EventClubDeleted         EventType = "club_deleted"
	EventEventDeleted        EventType = "event_deleted"
)

// Event represents an activity emitted by the ledgers and the coordinator.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MembershipPayload describes a membership change.
type MembershipPayload struct {
	MembershipID string `json:"membershipId"`
	UserID       string `json:"userId"`
	ClubID       string `json:"clubId"`
}

// RegistrationPayload describes a registration change.
type RegistrationPayload struct {
	RegistrationID string `json:"registrationId"`
	UserID         string `json:"userId"`
	EventID        string `json:"eventId"`
}

// CascadePayload describes a parent delete and how many join rows went with it.
type CascadePayload struct {
	ParentID    string `json:"parentId"`
	RemovedRows int    `json:"removedRows"`
}

// NewMembershipPayload builds the payload from a membership record.
func NewMembershipPayload(m *domain.Membership) MembershipPayload {
	return MembershipPayload{MembershipID: m.ID, UserID: m.UserID, ClubID: m.ClubID}
}

// NewRegistrationPayload builds the payload from a registration record.
func NewRegistrationPayload(r *domain.Registration) RegistrationPayload {
	return RegistrationPayload{RegistrationID: r.ID, UserID: r.UserID, EventID: r.EventID}
}
