package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/au-connect/internal/api/dto"
	"github.com/spec-kit/au-connect/internal/service"
)

// DashboardHandler serves the student dashboard and the admin overview.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Student handles GET /dashboard.
func (h *DashboardHandler) Student(c *fiber.Ctx) error {
	dash, err := h.dashboard.Student(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewStudentDashboardResponse(dash)))
}

// Admin handles GET /admin/overview.
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	overview, err := h.dashboard.Admin(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewAdminOverviewResponse(overview)))
}
