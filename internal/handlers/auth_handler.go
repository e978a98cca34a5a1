package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/middleware"
	"github.com/oliverbeck/peakstatus/internal/models"
	"github.com/oliverbeck/peakstatus/internal/services"
	"github.com/oliverbeck/peakstatus/internal/store"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "Invalid request body"))
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// One payload for unknown user and wrong password alike.
			return c.Status(fiber.StatusBadRequest).JSON(
				dto.Fail(dto.CodeInvalidCredentials, "Invalid username or password"))
		}
		return internalError(c, err)
	}

	return c.JSON(dto.OK(resp))
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "Invalid request body"))
	}

	user, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		return registrationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OK(fiber.Map{"user": user}))
}

// AdminRegister creates an account with a caller-chosen role. The admin gate
// has already run by the time this handler executes.
func (h *AuthHandler) AdminRegister(c *fiber.Ctx) error {
	var req dto.AdminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "Invalid request body"))
	}

	user, err := h.authService.CreateUserAsAdmin(req.Username, req.Password, models.Role(req.Role))
	if err != nil {
		return registrationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OK(fiber.Map{"user": user}))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	user, err := h.authService.GetUser(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				dto.Fail(dto.CodeNotFound, "User no longer exists"))
		}
		return internalError(c, err)
	}

	return c.JSON(dto.OK(fiber.Map{"user": user}))
}

// ListAdmins is readable by any authenticated user: viewers need it to
// discover whose status they can request via the userId query parameter.
func (h *AuthHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.authService.ListAdmins()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"admins": admins}))
}

func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"users": users}))
}

func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	claims, err := middleware.ClaimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail(dto.CodeAuthTokenInvalid, "Invalid authentication token"))
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "Invalid user id"))
	}

	// Route-layer policy: an admin cannot delete their own account.
	if uint(id) == claims.UserID {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, "Cannot delete your own account"))
	}

	if err := h.authService.DeleteUser(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				dto.Fail(dto.CodeNotFound, "User not found"))
		}
		return internalError(c, err)
	}

	return c.JSON(dto.OK(fiber.Map{"message": "User deleted"}))
}

func registrationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeValidationError, err.Error()))
	case errors.Is(err, store.ErrDuplicateUsername):
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail(dto.CodeDuplicateUsername, "Username already taken"))
	default:
		return internalError(c, err)
	}
}
