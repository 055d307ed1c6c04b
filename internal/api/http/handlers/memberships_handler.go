package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/au-connect/internal/api/dto"
	"github.com/spec-kit/au-connect/internal/domain"
	"github.com/spec-kit/au-connect/internal/service"
)

// MembershipsHandler exposes the membership ledger.
type MembershipsHandler struct {
	ledger *service.MembershipLedger
}

// NewMembershipsHandler constructs handler.
func NewMembershipsHandler(ledger *service.MembershipLedger) *MembershipsHandler {
	return &MembershipsHandler{ledger: ledger}
}

// List handles GET /memberships. Students see only their own.
func (h *MembershipsHandler) List(c *fiber.Ctx) error {
	caller := actor(c)
	var (
		list []domain.Membership
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
	return c.JSON(data(dto.NewMembershipResponses(list)))
}

// Join handles POST /memberships.
func (h *MembershipsHandler) Join(c *fiber.Ctx) error {
	var req dto.JoinClubRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := ensureActsFor(actor(c), req.UserID); err != nil {
		return err
	}
	m, err := h.ledger.Join(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewMembershipResponse(m)))
}

// Leave handles DELETE /memberships with a {userId, clubId} body.
func (h *MembershipsHandler) Leave(c *fiber.Ctx) error {
	var req dto.LeaveClubRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := ensureActsFor(actor(c), req.UserID); err != nil {
		return err
	}
	if err := h.ledger.Leave(c.UserContext(), req.UserID, req.ClubID); err != nil {
		return err
	}
	return c.JSON(message("Left club"))
}

// Remove handles DELETE /memberships/:id.
func (h *MembershipsHandler) Remove(c *fiber.Ctx) error {
	if err := h.ledger.RemoveByID(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Member removed"))
}
