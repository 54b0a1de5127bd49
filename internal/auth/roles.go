package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ideaflow/internal/domain"
	apperrors "github.com/spec-kit/ideaflow/pkg/util/errorutil"
)

// RequireRole ensures the principal holds one of the allowed roles. The role
// comes from the credential store record loaded by AuthMiddleware.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
