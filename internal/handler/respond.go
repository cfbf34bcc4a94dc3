package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError translates an error kind into an HTTP response. This is
// the only place kinds become status codes; services never see HTTP.
func respondError(c fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: apperr.MessageOf(err, "Invalid input"),
		})
	case apperr.NotFound:
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: apperr.MessageOf(err, "Not found"),
		})
	case apperr.Duplicate:
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error: apperr.MessageOf(err, "Already exists"),
		})
	case apperr.Transport:
		slog.Error("external service failure", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: apperr.MessageOf(err, "Service is unavailable, try again later"),
		})
	case apperr.Storage:
		slog.Error("storage failure", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Something went wrong, try again later",
		})
	default:
		slog.Error("unexpected error", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Something went wrong, try again later",
		})
	}
}
