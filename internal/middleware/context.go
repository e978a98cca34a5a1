package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oliverbeck/peakstatus/internal/token"
)

// ClaimsFromCtx extracts the verified identity attached by JWTProtected.
func ClaimsFromCtx(c *fiber.Ctx) (*token.Claims, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no verified token in context")
	}
	claims, ok := tok.Claims.(*token.Claims)
	if !ok {
		return nil, errors.New("unexpected claims type in context")
	}
	return claims, nil
}
