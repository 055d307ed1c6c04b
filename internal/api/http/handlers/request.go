package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/au-connect/internal/auth"
	"github.com/spec-kit/au-connect/internal/domain"
	apperrors "github.com/spec-kit/au-connect/pkg/util/errorutil"
)

// actor returns the verified caller. Routes using it sit behind the auth
// middleware, so a missing principal yields the zero actor.
func actor(c *fiber.Ctx) domain.Actor {
	principal, _ := auth.PrincipalFromContext(c)
	return principal.Actor()
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// ensureActsFor rejects a student naming another user. An empty userID is
// left for the ledger to reject as missing.
func ensureActsFor(a domain.Actor, userID string) error {
	if strings.TrimSpace(userID) == "" || a.CanActFor(userID) {
		return nil
	}
	return apperrors.NewForbidden("cannot act on behalf of another user")
}

func data(v any) fiber.Map {
	return fiber.Map{"data": v}
}

func message(text string) fiber.Map {
	return fiber.Map{"data": fiber.Map{"message": text}}
}
