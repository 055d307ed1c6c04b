package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/au-connect/internal/api/dto"
	"github.com/spec-kit/au-connect/internal/service"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// UsersHandler exposes profile endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if !actor(c).CanActFor(id) {
		return apperrors.NewForbidden("cannot read another user's profile")
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewUserResponse(user)))
}

// UpdateProfile handles PUT /users/update.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.UserContext(), actor(c), req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewUserResponse(user)))
}
