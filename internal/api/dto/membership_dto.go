package dto

import (
	"time"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/service"
)

// JoinClubRequest payload for POST /memberships.
type JoinClubRequest struct {
	UserID      string `json:"userId"`
	ClubID      string `json:"clubId"`
	StudentName string `json:"studentName"`
	StudentID   string `json:"studentId"`
	Major       string `json:"major"`
	Reason      string `json:"reason"`
}

// ToInput converts the payload into the ledger input.
func (r JoinClubRequest) ToInput() service.JoinInput {
	return service.JoinInput{
		UserID:      r.UserID,
		ClubID:      r.ClubID,
		StudentName: r.StudentName,
		StudentID:   r.StudentID,
		Major:       r.Major,
		Reason:      r.Reason,
	}
}

// LeaveClubRequest payload for DELETE /memberships.
type LeaveClubRequest struct {
	UserID string `json:"userId"`
	ClubID string `json:"clubId"`
}

// MembershipResponse is a membership as returned to clients.
type MembershipResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ClubID      string    `json:"clubId"`
	StudentName string    `json:"studentName"`
	StudentID   string    `json:"studentId"`
	Major       string    `json:"major"`
	Reason      string    `json:"reason"`
	JoinDate    time.Time `json:"joinDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMembershipResponse maps a domain membership.
func NewMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		ClubID:      m.ClubID,
		StudentName: m.StudentName,
		StudentID:   m.StudentID,
		Major:       m.Major,
		Reason:      m.Reason,
		JoinDate:    m.JoinDate,
		CreatedAt:   m.CreatedAt,
	}
}

// NewMembershipResponses maps a list of memberships.
func NewMembershipResponses(list []domain.Membership) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(list))
	for i := range list {
		out = append(out, NewMembershipResponse(&list[i]))
	}
	return out
}
