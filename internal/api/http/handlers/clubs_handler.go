package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/au-connect/internal/api/dto"
	"github.com/spec-kit/au-connect/internal/service"
)

// ClubsHandler exposes club endpoints.
type ClubsHandler struct {
	clubs       *service.ClubService
	views       *service.DashboardService
	memberships *service.MembershipLedger
	coordinator *service.Coordinator
}

// NewClubsHandler constructs handler.
func NewClubsHandler(clubs *service.ClubService, views *service.DashboardService,
	memberships *service.MembershipLedger, coordinator *service.Coordinator) *ClubsHandler {
	return &ClubsHandler{clubs: clubs, views: views, memberships: memberships, coordinator: coordinator}
}

// List handles GET /clubs.
func (h *ClubsHandler) List(c *fiber.Ctx) error {
	views, err := h.views.ListClubs(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewClubViewResponses(views)))
}

// Get handles GET /clubs/:id.
func (h *ClubsHandler) Get(c *fiber.Ctx) error {
	view, err := h.views.ClubDetail(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewClubViewResponse(*view)))
}

// Create handles POST /clubs.
func (h *ClubsHandler) Create(c *fiber.Ctx) error {
	var req dto.ClubRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	club, err := h.clubs.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewClubResponse(club)))
}

// Update handles PUT /clubs/:id.
func (h *ClubsHandler) Update(c *fiber.Ctx) error {
	var req dto.ClubRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	club, err := h.clubs.Update(c.UserContext(), c.Params("id"), req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewClubResponse(club)))
}

// Delete handles DELETE /clubs/:id, removing its memberships first.
func (h *ClubsHandler) Delete(c *fiber.Ctx) error {
	if err := h.coordinator.DeleteClub(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Club deleted"))
}

// Members handles GET /clubs/:id/members.
func (h *ClubsHandler) Members(c *fiber.Ctx) error {
	club, err := h.clubs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	list, err := h.memberships.ListByClub(c.UserContext(), club.ID)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewMembershipResponses(list)))
}
