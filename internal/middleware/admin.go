package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/models"
)

// AdminRequired gates a route to admin-role tokens. It must run after
// JWTProtected: the role check only ever sees already-verified claims, and
// performs no I/O of its own.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := ClaimsFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
		}
		if claims.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(
				dto.Fail(dto.CodeInsufficientPrivileges, "Admin access required"))
		}
		return c.Next()
	}
}
