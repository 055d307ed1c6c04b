package dto

import (
	"time"

	"github.com/spec-kit/au-connect/internal/domain"
)

// RegistrationRequest payload for POST and DELETE /registrations.
type RegistrationRequest struct {
	UserID  string `json:"userId"`
	EventID string `json:"eventId"`
}

// RegistrationResponse is a registration as returned to clients.
type RegistrationResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	EventID      string    `json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewRegistrationResponse maps a domain registration.
func NewRegistrationResponse(r *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		EventID:      r.EventID,
		RegisteredAt: r.RegisteredAt,
		CreatedAt:    r.CreatedAt,
	}
}

// NewRegistrationResponses maps a list of registrations.
func NewRegistrationResponses(list []domain.Registration) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(list))
	for i := range list {
		out = append(out, NewRegistrationResponse(&list[i]))
	}
	return out
}
