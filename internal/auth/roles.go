package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/workshop-service/pkg/util/errorutil"
)

// RequireAdmin authenticates the caller and admits only admin accounts.
// With enforcement off it passes every request through; with enforcement
// on and no middleware it rejects everything.
func RequireAdmin(enabled bool, m *AuthMiddleware) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	if m == nil {
		return func(*fiber.Ctx) error {
			return apperrors.NewUnauthorized("authentication is not configured")
		}
	}
	return func(c *fiber.Ctx) error {
		user, err := m.authenticate(c)
		if err != nil {
			return err
		}
		if !user.Admin {
			return apperrors.NewForbidden("admin role required")
		}
		c.Locals(principalKey, user)
		return c.Next()
	}
}
