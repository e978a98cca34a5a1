package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/oliverbeck/peakstatus/internal/dto"
)

var development bool

// SetDevelopment controls whether 500 responses carry full error detail.
// In production-equivalent mode the message is always redacted.
func SetDevelopment(v bool) {
	development = v
}

func internalError(c *fiber.Ctx, err error) error {
	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	message := "Internal server error"
	if development {
		message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(
		dto.Fail(dto.CodeInternalError, message))
}
