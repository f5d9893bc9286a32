package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-catalog/internal/domain"
	apperrors "github.com/spec-kit/movie-catalog/pkg/util"
)

// RequireRole gates a route on the decoded role. Runs after
// SessionMiddleware.Handle has attached the principal.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != role {
			return apperrors.NewForbidden("access denied, admin role is required")
		}
		return c.Next()
	}
}

// RequireAdmin is shorthand for the only elevated role in the catalog.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
