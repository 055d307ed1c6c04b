package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/repository"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// EventService manages event records. Deletion goes through the Coordinator.
type EventService struct {
	events repository.EventRepository
}

// EventInput carries the writable event fields.
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	ClubID      string
	Keywords    []string
}

// NewEventService builds the service.
func NewEventService(events repository.EventRepository) *EventService {
	return &EventService{events: events}
}

func (in EventInput) validate() error {
	details := map[string]any{}
	if strings.TrimSpace(in.Title) == "" {
		details["title"] = "is required"
	}
	if in.Date.IsZero() {
		details["date"] = "is required"
	}
	if domain.NormalizeID(in.ClubID) == "" {
		details["clubId"] = "is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Invalid event", details)
	}
	return nil
}

func (in EventInput) toDomain(id string) *domain.Event {
	keywords := make([]string, 0, len(in.Keywords))
	for _, k := range in.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &domain.Event{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date.UTC(),
		Location:    strings.TrimSpace(in.Location),
		ClubID:      domain.NormalizeID(in.ClubID),
		Keywords:    keywords,
	}
}

// Create stores a new event.
func (s *EventService) Create(ctx context.Context, input EventInput) (*domain.Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	event := input.toDomain("")
	if err := s.events.Create(ctx, event); err != nil {
		return nil, storeError("event", err)
	}
	return event, nil
}

// Update replaces the writable fields of an event.
func (s *EventService) Update(ctx context.Context, eventID string, input EventInput) (*domain.Event, error) {
	id := domain.NormalizeID(eventID)
	if id == "" {
		return nil, apperrors.NewValidationError("Missing event id", nil)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	event := input.toDomain(id)
	if err := s.events.Update(ctx, event); err != nil {
		return nil, storeError("event", err)
	}
	return event, nil
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, domain.NormalizeID(eventID))
	if err != nil {
		return nil, storeError("event", err)
	}
	return event, nil
}

// List returns all events ordered by date.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	list, err := s.events.List(ctx)
	if err != nil {
		return nil, storeError("event", err)
	}
	return list, nil
}
