package dto

import (
	"time"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/service"
)

// ClubRequest payload for creating or updating a club.
type ClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToInput converts the payload into the service input.
func (r ClubRequest) ToInput() service.ClubInput {
	return service.ClubInput{Name: r.Name, Description: r.Description}
}

// ClubResponse is a club as returned to clients.
type ClubResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberCount *int      `json:"memberCount,omitempty"`
	IsMember    *bool     `json:"isMember,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewClubResponse maps a bare club.
func NewClubResponse(c *domain.Club) ClubResponse {
	return ClubResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewClubViewResponse maps a club with its derived fields.
func NewClubViewResponse(v service.ClubView) ClubResponse {
	resp := NewClubResponse(&v.Club)
	resp.MemberCount = &v.MemberCount
	resp.IsMember = &v.IsMember
	return resp
}

// NewClubViewResponses maps a list of club views.
func NewClubViewResponses(views []service.ClubView) []ClubResponse {
	out := make([]ClubResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewClubViewResponse(v))
	}
	return out
}
