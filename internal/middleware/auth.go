package middleware

import (
	"errors"
	"log/slog"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oliverbeck/peakstatus/internal/config"
	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/token"
)

// JWTProtected is the bearer-token gate. It rejects with a distinct code for
// each failure: missing token, expired token, anything else invalid. On
// success the verified claims land in c.Locals("user") for downstream
// handlers; the gate itself touches no database.
func JWTProtected(cfg *config.Config, codec *token.Codec) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		Claims:     &token.Claims{},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Get(fiber.HeaderAuthorization) == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(
					dto.Fail(dto.CodeAuthTokenRequired, "Authentication token required"))
			}
			if errors.Is(err, jwt.ErrTokenExpired) {
				// Unverified decode, for the log line only.
				if claims := codec.Decode(bearerToken(c)); claims != nil {
					slog.Warn("expired token rejected", "username", claims.Username)
				}
				return c.Status(fiber.StatusUnauthorized).JSON(
					dto.Fail(dto.CodeAuthTokenExpired, "Authentication token expired"))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
		},
	})
}

func bearerToken(c *fiber.Ctx) string {
	return strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))
}
