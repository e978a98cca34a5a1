package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/middleware"
	"github.com/oliverbeck/peakstatus/internal/models"
	"github.com/oliverbeck/peakstatus/internal/services"
	"github.com/oliverbeck/peakstatus/internal/token"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type StatusHandler struct {
	statusService *services.StatusService
}

func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// GetStatus returns the latest entry for the target user: admins default to
// themselves, viewers must name an admin via ?userId.
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	userID, ok := h.targetUser(c, claims)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "userId query parameter is required"))
	}

	entry, err := h.statusService.GetLatestStatus(userID)
	if err != nil {
		return internalError(c, err)
	}
	// entry may be nil: data is null until the first write.
	return c.JSON(dto.OK(entry))
}

func (h *StatusHandler) CreateStatus(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "Invalid request body"))
	}

	entry, err := h.statusService.CreateStatus(&req, claims.UserID)
	if err != nil {
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(entry))
}

func (h *StatusHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "Invalid request body"))
	}

	entry, err := h.statusService.UpdateStatus(&req, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(
				dto.Fail(dto.CodeValidationError, err.Error()))
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(
				dto.Fail(dto.CodeNotFound, "No existing status; create one first"))
		default:
			return internalError(c, err)
		}
	}
	return c.JSON(dto.OK(entry))
}

func (h *StatusHandler) DeleteStatus(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	if err := h.statusService.DeleteAllStatus(claims.UserID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				dto.Fail(dto.CodeNotFound, "No status entries to delete"))
		}
		return internalError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"message": "Status history deleted"}))
}

func (h *StatusHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	userID, ok := h.targetUser(c, claims)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "userId query parameter is required"))
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxHistoryLimit {
			return c.Status(fiber.StatusBadRequest).JSON(
				dto.Fail(dto.CodeValidationError, "limit must be an integer between 1 and 100"))
		}
	}

	entries, err := h.statusService.GetStatusHistory(userID, limit)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.OK(entries))
}

func (h *StatusHandler) GetStats(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	userID, ok := h.targetUser(c, claims)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "userId query parameter is required"))
	}

	stats, err := h.statusService.GetUserStats(userID)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.OK(stats))
}

// targetUser resolves whose data a read is for. Admins default to their own
// userId when the query param is absent; viewers must always supply one.
func (h *StatusHandler) targetUser(c *fiber.Ctx, claims *token.Claims) (uint, bool) {
	raw := c.Query("userId")
	if raw == "" {
		if claims.Role == models.RoleAdmin {
			return claims.UserID, true
		}
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
