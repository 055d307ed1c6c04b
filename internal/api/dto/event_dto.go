package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/service"
)

// dateLayouts lists the accepted event date formats.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// EventRequest payload for creating or updating an event.
type EventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	ClubID      string   `json:"clubId"`
	Keywords    []string `json:"keywords"`
}

// ToInput converts the payload into the service input. An empty date is left
// for the service to reject; a malformed one is rejected here.
func (r EventRequest) ToInput() (service.EventInput, error) {
	input := service.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		ClubID:      r.ClubID,
		Keywords:    r.Keywords,
	}
	raw := strings.TrimSpace(r.Date)
	if raw == "" {
		return input, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			input.Date = parsed
			return input, nil
		}
	}
	return input, fmt.Errorf("unrecognised date %q", raw)
}

// EventResponse is an event as returned to clients.
type EventResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Date              time.Time `json:"date"`
	Location          string    `json:"location"`
	ClubID            string    `json:"clubId"`
	Keywords          []string  `json:"keywords"`
	RegistrationCount *int      `json:"registrationCount,omitempty"`
	IsRegistered      *bool     `json:"isRegistered,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewEventResponse maps a bare event.
func NewEventResponse(e *domain.Event) EventResponse {
	keywords := e.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		ClubID:      e.ClubID,
		Keywords:    keywords,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// NewEventViewResponse maps an event with its derived fields.
func NewEventViewResponse(v service.EventView) EventResponse {
	resp := NewEventResponse(&v.Event)
	resp.RegistrationCount = &v.RegistrationCount
	resp.IsRegistered = &v.IsRegistered
	return resp
}

// NewEventViewResponses maps a list of event views.
func NewEventViewResponses(views []service.EventView) []EventResponse {
	out := make([]EventResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewEventViewResponse(v))
	}
	return out
}
