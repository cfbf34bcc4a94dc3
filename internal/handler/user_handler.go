package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/daniil-kharaman/movie-web-app/internal/models"
	"github.com/daniil-kharaman/movie-web-app/internal/service"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	svc *service.LibraryService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.LibraryService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Health returns service health, including database connectivity.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *UserHandler) Health(c fiber.Ctx) error {
	if err := h.svc.Ping(c.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unavailable",
			"service": "movie-web-app",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-web-app",
	})
}

// ListUsers returns all user accounts.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.UserAccount
// @Router /users [get]
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.svc.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// CreateUser creates a new user account.
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User name"
// @Success 201 {object} models.UserAccount
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.svc.CreateUser(c.Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// RenameUser renames an existing user account.
// @Summary Rename user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.CreateUserRequest true "New name"
// @Success 200 {object} models.UserAccount
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) RenameUser(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	var req models.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.svc.RenameUser(c.Context(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser removes a user account and all of their movies.
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	if err := h.svc.DeleteUser(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
