package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/au-connect/internal/api/dto"
	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/service"
)

// RegistrationsHandler exposes the registration ledger.
type RegistrationsHandler struct {
	ledger *service.RegistrationLedger
}

// NewRegistrationsHandler constructs handler.
func NewRegistrationsHandler(ledger *service.RegistrationLedger) *RegistrationsHandler {
	return &RegistrationsHandler{ledger: ledger}
}

// List handles GET /registrations. Students see only their own.
func (h *RegistrationsHandler) List(c *fiber.Ctx) error {
	caller := actor(c)
	var (
		list []domain.Registration
		err  error
	)
	if caller.IsAdmin() {
		list, err = h.ledger.List(c.UserContext())
	} else {
		list, err = h.ledger.ListByUser(c.UserContext(), caller.UserID)
	}
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewRegistrationResponses(list)))
}

// Register handles POST /registrations.
func (h *RegistrationsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := ensureActsFor(actor(c), req.UserID); err != nil {
		return err
	}
	reg, err := h.ledger.Register(c.UserContext(), req.UserID, req.EventID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewRegistrationResponse(reg)))
}

// Unregister handles DELETE /registrations with a {userId, eventId} body.
func (h *RegistrationsHandler) Unregister(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := ensureActsFor(actor(c), req.UserID); err != nil {
		return err
	}
	if err := h.ledger.Unregister(c.UserContext(), req.UserID, req.EventID); err != nil {
		return err
	}
	return c.JSON(message("Unregistered"))
}

// Remove handles DELETE /registrations/:id.
func (h *RegistrationsHandler) Remove(c *fiber.Ctx) error {
	if err := h.ledger.RemoveByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Registrant removed"))
}
