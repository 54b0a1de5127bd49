package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/domain"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}
