package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/au-connect/internal/api/dto"
	"github.com/spec-kit/au-connect/internal/service"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// EventsHandler exposes event endpoints.
type EventsHandler struct {
	events        *service.EventService
	views         *service.DashboardService
	registrations *service.RegistrationLedger
	coordinator   *service.Coordinator
}

// NewEventsHandler constructs handler.
func NewEventsHandler(events *service.EventService, views *service.DashboardService,
	registrations *service.RegistrationLedger, coordinator *service.Coordinator) *EventsHandler {
	return &EventsHandler{events: events, views: views, registrations: registrations, coordinator: coordinator}
}

func parseEvent(c *fiber.Ctx) (service.EventInput, error) {
	var req dto.EventRequest
	if err := parseBody(c, &req); err != nil {
		return service.EventInput{}, err
	}
	input, err := req.ToInput()
	if err != nil {
		return service.EventInput{}, apperrors.NewValidationError("invalid date", map[string]any{"date": req.Date})
	}
	return input, nil
}

// List handles GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	views, err := h.views.ListEvents(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewEventViewResponses(views)))
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	view, err := h.views.EventDetail(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewEventViewResponse(*view)))
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	input, err := parseEvent(c)
	if err != nil {
		return err
	}
	event, err := h.events.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewEventResponse(event)))
}

// Update handles PUT /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	input, err := parseEvent(c)
	if err != nil {
		return err
	}
	event, err := h.events.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewEventResponse(event)))
}

// Delete handles DELETE /events/:id, removing its registrations first.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	if err := h.coordinator.DeleteEvent(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Event deleted"))
}

// Registrants handles GET /events/:id/registrants.
func (h *EventsHandler) Registrants(c *fiber.Ctx) error {
	event, err := h.events.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	list, err := h.registrations.ListByEvent(c.UserContext(), event.ID)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewRegistrationResponses(list)))
}
